package session

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
	"github.com/ufmarketplace/ufmarket/internal/client/migrations"

	_ "modernc.org/sqlite"
)

// InMemoryDSN opens a process-lifetime in-memory database. The session is
// gone when the process exits, which is exactly the lifetime the store wants.
const InMemoryDSN = "file::memory:?cache=shared"

// RunMigrations applies the embedded schema migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens the SQLite database at dsn and brings its schema up to date.
// The pool is capped at one connection: an in-memory database lives only as
// long as a connection to it does.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
