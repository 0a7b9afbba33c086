// Package sqlutil holds small database/sql helpers shared by SQLite-backed
// stores.
package sqlutil

import (
	"database/sql"
	"strings"
)

// InClauseArgs returns a comma-separated list of "?" placeholders and the
// matching args slice for an IN clause.
//
// An empty items slice yields "NULL" and no args, so `IN (NULL)` matches
// nothing.
func InClauseArgs(items []string) (string, []any) {
	if len(items) == 0 {
		return "NULL", nil
	}
	args := make([]any, len(items))
	for i, item := range items {
		args[i] = item
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(items)), ", ")
	return placeholders, args
}

// ScanRows drains rows into a slice using the provided scanner, closing rows
// on every path.
func ScanRows[T any](rows *sql.Rows, scan func(*sql.Rows) (T, error)) ([]T, error) {
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
