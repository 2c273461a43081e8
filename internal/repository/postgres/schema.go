package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// users.singleton is TRUE on every row and UNIQUE, so the table can never hold
// more than one account no matter how registrations interleave.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	is_admin      BOOLEAN NOT NULL DEFAULT TRUE,
	singleton     BOOLEAN NOT NULL DEFAULT TRUE UNIQUE CHECK (singleton),
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS candidates (
	id                UUID PRIMARY KEY,
	name              TEXT NOT NULL,
	age               INTEGER NOT NULL,
	party             TEXT NOT NULL,
	constituency      TEXT NOT NULL,
	education         TEXT NOT NULL,
	biography         TEXT NOT NULL,
	political_history TEXT,
	achievements      TEXT,
	allegations       TEXT NOT NULL DEFAULT 'No known allegations.',
	criminal_record   TEXT NOT NULL DEFAULT 'No known criminal record.',
	youtube_url       TEXT,
	image_url         TEXT,
	viewed_by         TEXT[] NOT NULL DEFAULT '{}',
	liked_by          TEXT[] NOT NULL DEFAULT '{}',
	disliked_by       TEXT[] NOT NULL DEFAULT '{}',
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_candidates_created_at ON candidates (created_at DESC);
`

// CreateSchema creates the tables if they are missing. It is safe to run on every start.
func CreateSchema(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
