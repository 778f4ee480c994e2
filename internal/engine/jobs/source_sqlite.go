package jobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	_ "modernc.org/sqlite"
)

// DefaultTable is the table read by the database sources.
const DefaultTable = "postings"

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// selectPostingsSQL builds a SELECT of every source column in canonical order.
// cast, when set, is appended to each column (e.g. "::text" for Postgres);
// orderBy, when set, fixes the row order.
func selectPostingsSQL(table, cast, orderBy string) (string, error) {
	if !identRe.MatchString(table) {
		return "", fmt.Errorf("invalid table name %q", table)
	}
	cols := make([]string, len(Columns))
	for i, c := range Columns {
		cols[i] = `"` + c + `"` + cast
	}
	q := "SELECT " + strings.Join(cols, ", ") + " FROM " + table
	if orderBy != "" {
		q += " ORDER BY " + orderBy
	}
	return q, nil
}

// ReadSQLite reads raw rows from a SQLite database file opened read-only.
// The table must carry every source column, named as in the CSV header.
func ReadSQLite(ctx context.Context, path, table string) ([]RawRow, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDataNotFound, path)
		}
		return nil, fmt.Errorf("sqlite: stat %s: %w", path, err)
	}
	if table == "" {
		table = DefaultTable
	}
	query, err := selectPostingsSQL(table, "", "rowid")
	if err != nil {
		return nil, fmt.Errorf("sqlite: %w", err)
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("sqlite: open db: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query %s: %w", table, err)
	}
	defer rows.Close()

	var out []RawRow
	cells := make([]sql.NullString, len(Columns))
	dest := make([]any, len(Columns))
	for i := range cells {
		dest[i] = &cells[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("sqlite: scan: %w", err)
		}
		out = append(out, rawRowFromValues(func(i int) string { return cells[i].String }))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: rows: %w", err)
	}
	return out, nil
}

var columnPos = func() map[string]int {
	pos := make(map[string]int, len(Columns))
	for i, c := range Columns {
		pos[c] = i
	}
	return pos
}()

// rawRowFromValues maps positional values in Columns order onto a RawRow.
func rawRowFromValues(value func(i int) string) RawRow {
	return rowFromCells(func(col string) string { return value(columnPos[col]) })
}
