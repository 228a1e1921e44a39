// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	_ "github.com/mattn/go-sqlite3"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// readSQLite reads every row of table from the database at path. The
// database is opened read-only; journal-finder never writes to it.
func readSQLite(ctx context.Context, source, path, tableName string) (*table, error) {
	if !identRe.MatchString(tableName) {
		return nil, loadErr(source, ErrMalformed, "invalid table name %q", tableName)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro&_query_only=true")
	if err != nil {
		return nil, loadErr(source, ErrMalformed, "opening database: %v", err)
	}
	defer db.Close()

	var exists int
	if err := db.QueryRowContext(ctx,
		`SELECT count(*) FROM sqlite_master WHERE type IN ('table','view') AND name = ?`, tableName,
	).Scan(&exists); err != nil {
		return nil, loadErr(source, ErrMalformed, "reading schema: %v", err)
	}
	if exists == 0 {
		return nil, loadErr(source, ErrMissingColumn, "table %q does not exist", tableName)
	}

	rows, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM %q`, tableName))
	if err != nil {
		return nil, loadErr(source, ErrMalformed, "querying %s: %v", tableName, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, loadErr(source, ErrMalformed, "reading columns: %v", err)
	}

	t := &table{header: cols}
	for rows.Next() {
		raw := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, loadErr(source, ErrMalformed, "scanning row: %v", err)
		}
		row := make([]sql.NullString, len(cols))
		for i, c := range raw {
			if c.Valid {
				row[i] = textCell(c.String)
			}
		}
		t.rows = append(t.rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, loadErr(source, ErrMalformed, "reading rows: %v", err)
	}
	return t, nil
}
