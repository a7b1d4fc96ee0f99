// Package dbx holds the small database helpers shared by repositories: the
// DBTX interface implemented by both *sql.DB and *sql.Tx, and Open, which
// opens the local SQLite database with sane pragmas and an up-to-date schema.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by our repos.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
