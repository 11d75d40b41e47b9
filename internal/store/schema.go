package store

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is the review feedback table. Kept as a single idempotent
// statement block; there is no versioned migration history yet because the
// table has never changed shape.
const schema = `
CREATE TABLE IF NOT EXISTS review_feedback (
	id TEXT PRIMARY KEY,
	file_extension TEXT NOT NULL,
	rule TEXT NOT NULL,
	code_snippet TEXT,
	suggestion TEXT,
	issue_hash TEXT NOT NULL,
	is_helpful INTEGER NOT NULL,
	reason TEXT,
	correction TEXT,
	contributor TEXT,
	repository TEXT,
	ts_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_review_feedback_extension
	ON review_feedback(file_extension);
`

func ensureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// ValidateSchema checks that the expected table exists. Used by doctor.
func ValidateSchema(ctx context.Context, db *sql.DB) error {
	var name string
	err := db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'review_feedback'").Scan(&name)
	if err == sql.ErrNoRows {
		return fmt.Errorf("table review_feedback is missing")
	}
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	return nil
}

// DB returns the underlying sql.DB for direct access. Use with caution.
func (s *Store) DB() *sql.DB {
	return s.db
}
