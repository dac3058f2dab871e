package postgres

import (
	"context"
	"database/sql"
)

// Querier is an interface satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Ensure interfaces are satisfied.
var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

// Migrate creates the schema if it does not exist yet. Replaces the
// migrations endpoint of earlier deployments; runs once at startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			email       TEXT NOT NULL UNIQUE,
			occupation  TEXT NOT NULL,
			birth_date  TIMESTAMPTZ NOT NULL,
			photo_url   TEXT NOT NULL DEFAULT '',
			bio         TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS rides (
			id                TEXT PRIMARY KEY,
			driver_id         TEXT NOT NULL,
			vehicle           TEXT NOT NULL,
			capacity          INT NOT NULL CHECK (capacity > 0),
			fare              DOUBLE PRECISION NOT NULL CHECK (fare >= 0),
			departure_time    TIMESTAMPTZ NOT NULL,
			arrival_time      TIMESTAMPTZ NOT NULL,
			origin_place      TEXT NOT NULL,
			origin_postal     TEXT NOT NULL,
			origin_street     TEXT NOT NULL,
			origin_number     INT NOT NULL,
			origin_district   TEXT NOT NULL,
			origin_city       TEXT NOT NULL,
			origin_state      TEXT NOT NULL,
			dest_place        TEXT NOT NULL,
			dest_postal       TEXT NOT NULL,
			dest_street       TEXT NOT NULL,
			dest_number       INT NOT NULL,
			dest_district     TEXT NOT NULL,
			dest_city         TEXT NOT NULL,
			dest_state        TEXT NOT NULL,
			status            TEXT NOT NULL,
			requesters        TEXT[] NOT NULL DEFAULT '{}',
			passengers        TEXT[] NOT NULL DEFAULT '{}',
			version           BIGINT NOT NULL DEFAULT 0,
			created_at        TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS rides_status_idx ON rides (status)`,
		`CREATE TABLE IF NOT EXISTS ratings (
			id          TEXT PRIMARY KEY,
			ride_id     TEXT NOT NULL,
			author_id   TEXT NOT NULL,
			driver_id   TEXT NOT NULL,
			score       INT NOT NULL CHECK (score BETWEEN 1 AND 5),
			comment     TEXT NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS ratings_driver_idx ON ratings (driver_id)`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
