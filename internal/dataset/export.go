// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/journal-finder/pkg/types"
)

// Canonical column names written by Export; Load reads them back.
const (
	colName        = "Journal Name"
	colImpact      = "jif"
	colDescription = "期刊简介"
	colKeywords    = "发文领域关键词"
	colScope       = "Aim and Scope"
)

// Export writes the store's journals to dest in the format chosen by its
// extension, so that Load(dest) yields the same records. For SQLite
// destinations the table is replaced; tableName defaults to "journals".
func (s *Store) Export(ctx context.Context, dest, tableName string) error {
	if tableName == "" {
		tableName = types.DefaultTable
	}
	f := formatOf(dest)
	if f == formatSQLite {
		return exportSQLite(ctx, dest, tableName, s.journals)
	}

	fh, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	if err := s.encode(f, fh); err != nil {
		fh.Close()
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return fh.Close()
}

func (s *Store) encode(f format, w io.Writer) error {
	switch f {
	case formatTSV:
		return writeDelimited(w, '\t', s.journals)
	case formatYAML:
		return writeYAML(w, s.journals)
	default:
		return writeDelimited(w, ',', s.journals)
	}
}

// extraColumns returns the union of extra column names in first-seen order.
func extraColumns(journals []types.Journal) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, j := range journals {
		for _, f := range j.Extra {
			if !seen[f.Column] {
				seen[f.Column] = true
				cols = append(cols, f.Column)
			}
		}
	}
	return cols
}

// record flattens a journal into cells aligned with the canonical columns
// followed by extras. Missing cells are invalid.
func record(j types.Journal, extras []string) []sql.NullString {
	row := []sql.NullString{
		{String: j.Name, Valid: true},
		formatFloat(j.ImpactFactor),
		j.Description,
		j.Keywords,
		j.AimAndScope,
	}
	for _, col := range extras {
		v, ok := j.Lookup(col)
		row = append(row, sql.NullString{String: v, Valid: ok})
	}
	return row
}

func formatFloat(f sql.NullFloat64) sql.NullString {
	if !f.Valid {
		return sql.NullString{}
	}
	return sql.NullString{String: strconv.FormatFloat(f.Float64, 'g', -1, 64), Valid: true}
}

func header(extras []string) []string {
	return append([]string{colName, colImpact, colDescription, colKeywords, colScope}, extras...)
}

func writeDelimited(w io.Writer, comma rune, journals []types.Journal) error {
	extras := extraColumns(journals)
	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.Write(header(extras)); err != nil {
		return err
	}
	for _, j := range journals {
		cells := record(j, extras)
		out := make([]string, len(cells))
		for i, c := range cells {
			out[i] = c.String
		}
		if err := cw.Write(out); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeYAML emits a sequence of mappings. Node building keeps the column
// order and writes missing cells as null.
func writeYAML(w io.Writer, journals []types.Journal) error {
	extras := extraColumns(journals)
	cols := header(extras)

	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, j := range journals {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for i, c := range record(j, extras) {
			key := &yaml.Node{Kind: yaml.ScalarNode, Value: cols[i]}
			val := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
			if c.Valid {
				val = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.String}
				if i == 1 {
					val.Tag = "!!float"
				}
			}
			m.Content = append(m.Content, key, val)
		}
		seq.Content = append(seq.Content, m)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{seq}}); err != nil {
		return err
	}
	return enc.Close()
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// exportSQLite replaces tableName in the database at path with the journals.
// The impact factor column is REAL; all others are TEXT.
func exportSQLite(ctx context.Context, path, tableName string, journals []types.Journal) error {
	if !identRe.MatchString(tableName) {
		return fmt.Errorf("invalid table name %q", tableName)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	extras := extraColumns(journals)
	cols := header(extras)
	defs := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		typ := "TEXT"
		if i == 1 {
			typ = "REAL"
		}
		defs[i] = quoteIdent(c) + " " + typ
		marks[i] = "?"
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmts := []string{
		"DROP TABLE IF EXISTS " + quoteIdent(tableName),
		fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(tableName), strings.Join(defs, ", ")),
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	ins, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s VALUES (%s)",
		quoteIdent(tableName), strings.Join(marks, ", ")))
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer ins.Close()

	for _, j := range journals {
		cells := record(j, extras)
		args := make([]any, len(cells))
		for i, c := range cells {
			args[i] = c
		}
		args[1] = j.ImpactFactor
		if _, err := ins.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("inserting %q: %w", j.Name, err)
		}
	}
	return tx.Commit()
}
