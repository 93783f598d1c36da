// Package kvrepo manages key-value storage used to persist application state.
package kvrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog"

	"github.com/go-petr/kantoor/internal/domain"
	"github.com/go-petr/kantoor/pkg/dbpkg"
	"github.com/go-petr/kantoor/pkg/errorspkg"
)

// RepoPGS facilitates key-value storage on top of a SQL database.
//
// The queries are portable between PostgreSQL and SQLite.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns key-value RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const migrateQuery = `
CREATE TABLE IF NOT EXISTS kv_slots (
    slot       TEXT PRIMARY KEY,
    payload    TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)
`

// Migrate creates the storage table if it does not exist yet.
func (r *RepoPGS) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, migrateQuery)
	return err
}

const getQuery = `
SELECT payload
FROM kv_slots
WHERE slot = $1
`

// Get returns the value stored under key.
func (r *RepoPGS) Get(ctx context.Context, key string) ([]byte, error) {
	l := zerolog.Ctx(ctx)

	var payload string

	err := r.db.QueryRowContext(ctx, getQuery, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStateNotFound
		}

		l.Error().Err(err).Str("key", key).Send()

		return nil, errorspkg.ErrInternal
	}

	return []byte(payload), nil
}

const setQuery = `
INSERT INTO
    kv_slots (slot, payload, updated_at)
VALUES
    ($1, $2, CURRENT_TIMESTAMP)
ON CONFLICT (slot) DO UPDATE
SET payload = excluded.payload, updated_at = excluded.updated_at
`

// Set overwrites the value stored under key.
func (r *RepoPGS) Set(ctx context.Context, key string, value []byte) error {
	l := zerolog.Ctx(ctx)

	if _, err := r.db.ExecContext(ctx, setQuery, key, string(value)); err != nil {
		l.Error().Err(err).Str("key", key).Send()
		return errorspkg.ErrInternal
	}

	return nil
}

const deleteQuery = `
DELETE FROM kv_slots
WHERE slot = $1
`

// Delete removes the value stored under key.
func (r *RepoPGS) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, deleteQuery, key)
	return err
}
