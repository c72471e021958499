package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

const (
	// tables
	MediaTable   = "portfolio_media"
	ContentTable = "portfolio_content"
	MessageTable = "contact_messages"
	AdminTable   = "admins"
)

// Schema creates every table the site needs. It is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS portfolio_media (
    id            UUID PRIMARY KEY,
    section_name  TEXT NOT NULL,
    file_name     TEXT NOT NULL,
    file_url      TEXT NOT NULL,
    file_type     TEXT NOT NULL CHECK (file_type IN ('image', 'video')),
    file_size     BIGINT,
    display_order INTEGER NOT NULL DEFAULT 0,
    group_key     TEXT NOT NULL DEFAULT '',
    pair_role     TEXT NOT NULL DEFAULT '' CHECK (pair_role IN ('', 'before', 'after')),
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS portfolio_media_section_idx
    ON portfolio_media (section_name, file_type, display_order);

CREATE TABLE IF NOT EXISTS portfolio_content (
    section_name TEXT PRIMARY KEY,
    content      JSONB NOT NULL,
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS contact_messages (
    id         UUID PRIMARY KEY,
    name       TEXT NOT NULL,
    email      TEXT NOT NULL,
    message    TEXT NOT NULL,
    is_read    BOOLEAN NOT NULL DEFAULT false,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS admins (
    id            UUID PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    password_hash BYTEA NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

type Storage struct {
	db *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*Storage, error) {
	const op = "storage.postgresql.New"

	db, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Pool() *pgxpool.Pool {
	return s.db
}

// ApplySchema runs Schema against the database.
func (s *Storage) ApplySchema(ctx context.Context) error {
	const op = "storage.postgresql.ApplySchema"

	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Storage) Stop() {
	s.db.Close()
}
