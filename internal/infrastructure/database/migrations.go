package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// schema is applied in order; every statement is idempotent.
//
// document_authors is the single authoritative Author<->Document relation:
//   - deleting a document removes its join rows (ON DELETE CASCADE)
//   - deleting an author that still has join rows is refused (ON DELETE RESTRICT)
//
// references are owned by exactly one document and go with it.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS authors (
		id          BIGSERIAL PRIMARY KEY,
		first_name  VARCHAR(255) NOT NULL,
		last_name   VARCHAR(255) NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT authors_first_last_name_key UNIQUE (first_name, last_name)
	)`,
	`CREATE TABLE IF NOT EXISTS documents (
		id          BIGSERIAL PRIMARY KEY,
		title       VARCHAR(255) NOT NULL,
		body        VARCHAR(1000) NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS "references" (
		id           BIGSERIAL PRIMARY KEY,
		document_id  BIGINT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
		reference    TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_references_document_id ON "references"(document_id)`,
	`CREATE TABLE IF NOT EXISTS document_authors (
		document_id  BIGINT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
		author_id    BIGINT NOT NULL REFERENCES authors(id) ON DELETE RESTRICT,
		PRIMARY KEY (document_id, author_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_document_authors_author_id ON document_authors(author_id)`,
}

// Migrate tạo schema nếu chưa tồn tại
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d failed: %w", i+1, err)
		}
	}

	log.Info().Int("statements", len(schema)).Msg("[DATABASE] Schema migrated")
	return nil
}
