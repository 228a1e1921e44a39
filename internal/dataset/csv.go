// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

const utf8BOM = "\ufeff"

// readDelimited parses a header-first delimited file. Short rows are padded
// with missing cells; rows longer than the header are malformed.
func readDelimited(source string, r io.Reader, comma rune) (*table, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, loadErr(source, ErrEmpty, "no header row")
	}
	if err != nil {
		return nil, loadErr(source, ErrMalformed, "%v", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	t := &table{header: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, loadErr(source, ErrMalformed, "%v", err)
		}
		if len(rec) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, loadErr(source, ErrMalformed, "line %d: expected %d fields, saw %d", line, len(header), len(rec))
		}

		row := make([]sql.NullString, len(header))
		for i, v := range rec {
			row[i] = textCell(v)
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}
