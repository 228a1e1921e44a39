// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"database/sql"
	"errors"
	"io"

	"go.yaml.in/yaml/v3"
)

// readYAML parses a YAML sequence of mappings, one mapping per journal.
// Keys become columns in first-seen order; a null value or an absent key
// is a missing cell.
func readYAML(source string, r io.Reader) (*table, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, loadErr(source, ErrEmpty, "empty document")
		}
		return nil, loadErr(source, ErrMalformed, "%v", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		return nil, loadErr(source, ErrMalformed, "line %d: expected a list of journals", root.Line)
	}

	t := &table{}
	colIndex := make(map[string]int)
	var records []map[int]sql.NullString

	for _, item := range root.Content {
		if item.Kind != yaml.MappingNode {
			return nil, loadErr(source, ErrMalformed, "line %d: journal entry is not a mapping", item.Line)
		}
		rec := make(map[int]sql.NullString)
		for i := 0; i+1 < len(item.Content); i += 2 {
			key, val := item.Content[i], item.Content[i+1]
			idx, ok := colIndex[key.Value]
			if !ok {
				idx = len(t.header)
				colIndex[key.Value] = idx
				t.header = append(t.header, key.Value)
			}
			if val.Kind != yaml.ScalarNode {
				return nil, loadErr(source, ErrMalformed, "line %d: field %q is not a scalar", val.Line, key.Value)
			}
			if val.Tag == "!!null" {
				rec[idx] = sql.NullString{}
				continue
			}
			rec[idx] = textCell(val.Value)
		}
		records = append(records, rec)
	}

	for _, rec := range records {
		row := make([]sql.NullString, len(t.header))
		for i, c := range rec {
			row[i] = c
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}
