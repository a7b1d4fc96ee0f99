package dbx

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/notesum/internal/filex"
	"github.com/dmitrijs2005/notesum/internal/migrations"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

type options struct {
	busyTimeout int
	mkdirAll    bool
	migrate     bool
}

// Option customises Open.
type Option func(*options)

// WithBusyTimeout sets PRAGMA busy_timeout in milliseconds. Default: 5000.
func WithBusyTimeout(ms int) Option { return func(o *options) { o.busyTimeout = ms } }

// WithMkdirAll creates the parent directory of the database file first.
func WithMkdirAll() Option { return func(o *options) { o.mkdirAll = true } }

// WithoutMigrations skips schema migrations. Only tests need this.
func WithoutMigrations() Option { return func(o *options) { o.migrate = false } }

// Open opens the SQLite database at dsn, applies pragmas, checks the
// connection and brings the schema up to date.
func Open(ctx context.Context, dsn string, opts ...Option) (*sql.DB, error) {
	o := options{busyTimeout: 5000, migrate: true}
	for _, opt := range opts {
		opt(&o)
	}

	if o.mkdirAll && dsn != ":memory:" {
		if _, err := filex.EnsureParentDir(dsn); err != nil {
			return nil, fmt.Errorf("dbx: %w", err)
		}
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("dbx: open: %w", err)
	}
	// Pragmas are per connection and ":memory:" is per connection too, so
	// the single-user app runs on exactly one.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		fmt.Sprintf("PRAGMA busy_timeout = %d", o.busyTimeout),
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("dbx: %s: %w", p, err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("dbx: ping: %w", err)
	}

	if o.migrate {
		if err := RunMigrations(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}

// RunMigrations applies the embedded migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("dbx: goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("dbx: migrate: %w", err)
	}
	return nil
}
