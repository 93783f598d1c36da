// Package dbpkg provides helpers to make db initialization and testing easier.
package dbpkg

import (
	"context"
	"database/sql"
	"testing"

	// Drivers selectable through DB_DRIVER.
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Setup sets up connection with database.
func Setup(driver, source string) (*sql.DB, error) {
	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

// SetupSQLite opens a private in-memory SQLite database to be used in tests.
// The database is closed once the test is done.
func SetupSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Setup("sqlite", "file::memory:")
	if err != nil {
		t.Fatalf("Setup(sqlite) failed: %v", err)
	}

	// Every new connection to :memory: is a fresh database.
	db.SetMaxOpenConns(1)

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatalf("db.Close() failed: %v", err)
		}
	})

	return db
}

// SQLInterface provides neccessary db methods to perform queries.
type SQLInterface interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}
