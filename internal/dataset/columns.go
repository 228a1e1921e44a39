// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"database/sql"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/journal-finder/pkg/types"
)

// Header aliases per field, in priority order. The first entries are the
// headers of the curated journalFinder CSV.
var (
	nameAliases        = []string{"Journal Name", "name", "journal", "journal_name", "title"}
	impactAliases      = []string{"jif", "impact factor", "impact_factor", "if"}
	descriptionAliases = []string{"期刊简介", "description", "introduction"}
	keywordsAliases    = []string{"发文领域关键词", "keywords", "keyword field", "keyword_field"}
	scopeAliases       = []string{"Aim and Scope", "aims and scope", "aim_and_scope", "aims_and_scope", "scope"}
)

// naMarkers are the cell values read as missing, matching pandas' default
// na_values so that CSV exports of a DataFrame round-trip.
var naMarkers = map[string]bool{
	"": true, "#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true,
	"-1.#QNAN": true, "-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true,
	"<NA>": true, "N/A": true, "NA": true, "NULL": true, "NaN": true,
	"None": true, "n/a": true, "nan": true, "null": true,
}

// table is the source-independent form every reader produces: a header
// and rows of nullable cells, one per header column.
type table struct {
	header []string
	rows   [][]sql.NullString
}

// textCell converts a raw text value, trimming whitespace and mapping NA
// markers to a missing cell.
func textCell(raw string) sql.NullString {
	v := strings.TrimSpace(raw)
	if naMarkers[v] {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

// columnIndex returns the index of the first header matching any alias,
// or -1.
func columnIndex(header []string, aliases []string) int {
	for _, alias := range aliases {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), alias) {
				return i
			}
		}
	}
	return -1
}

// journals converts the table into records. It fails only when the name
// column is absent; rows without a name are skipped and counted.
func (t *table) journals(source string) ([]types.Journal, Stats, error) {
	var st Stats
	st.Columns = append([]string(nil), t.header...)

	nameCol := columnIndex(t.header, nameAliases)
	if nameCol < 0 {
		return nil, st, loadErr(source, ErrMissingColumn, "no journal name column (expected %q)", nameAliases[0])
	}
	impactCol := columnIndex(t.header, impactAliases)
	descCol := columnIndex(t.header, descriptionAliases)
	kwCol := columnIndex(t.header, keywordsAliases)
	scopeCol := columnIndex(t.header, scopeAliases)

	used := map[int]bool{nameCol: true, impactCol: true, descCol: true, kwCol: true, scopeCol: true}

	cell := func(row []sql.NullString, i int) sql.NullString {
		if i < 0 || i >= len(row) {
			return sql.NullString{}
		}
		return row[i]
	}

	out := make([]types.Journal, 0, len(t.rows))
	for n, row := range t.rows {
		name := cell(row, nameCol)
		if !name.Valid {
			slog.Warn("skipping journal row without a name", "source", source, "row", n+1)
			st.SkippedRows++
			continue
		}

		j := types.Journal{
			Name:        name.String,
			Description: cell(row, descCol),
			Keywords:    cell(row, kwCol),
			AimAndScope: cell(row, scopeCol),
		}

		if raw := cell(row, impactCol); raw.Valid {
			f, err := strconv.ParseFloat(strings.TrimSpace(raw.String), 64)
			if err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
				j.ImpactFactor = sql.NullFloat64{Float64: f, Valid: true}
			} else {
				slog.Warn("unparseable impact factor", "source", source, "journal", j.Name, "value", raw.String)
				st.BadImpact++
			}
		}

		for i, h := range t.header {
			if used[i] {
				continue
			}
			if c := cell(row, i); c.Valid {
				j.Extra = append(j.Extra, types.Field{Column: h, Value: c.String})
			}
		}

		out = append(out, j)
	}
	return out, st, nil
}
