// Package dbxtest holds test helpers for code built on dbx.
package dbxtest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/notesum/internal/dbx"
)

// OpenMemory opens a migrated in-memory database and closes it when the
// test ends.
func OpenMemory(t testing.TB) *sql.DB {
	t.Helper()
	db, err := dbx.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("dbxtest.OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
