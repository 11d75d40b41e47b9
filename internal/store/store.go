// Package store persists review feedback events in SQLite. Events are
// append-only: keyed by a generated id, timestamped at insert time, never
// updated or deleted. Queries materialize full partition or table scans so
// the aggregators upstream see a consistent snapshot.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/runger/revlearn/internal/feedback"
)

// Store is the feedback persistence layer.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
	path   string
}

// Options configures store initialization.
type Options struct {
	Logger *slog.Logger
	Path   string
}

// DefaultPath returns the default database path (~/.revlearn/feedback.db).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".revlearn", "feedback.db"), nil
}

// Open opens the database and ensures the schema exists. Schema creation is
// idempotent, so opening an already-initialized database is a no-op beyond
// the connection itself. The caller must call Close when done.
func Open(ctx context.Context, opts Options) (*Store, error) {
	path := opts.Path
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses _pragma=name(value) syntax
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite handles concurrency better with a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := ensureSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the path to the database file.
func (s *Store) Path() string {
	return s.path
}

// Append stores a validated feedback event and returns its generated id.
// The timestamp is assigned here, not by the caller.
func (s *Store) Append(ctx context.Context, ev *feedback.Event) (string, error) {
	if ev == nil {
		return "", fmt.Errorf("feedback event is nil")
	}
	id := uuid.NewString()
	tsMs := time.Now().UnixMilli()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO review_feedback
			(id, file_extension, rule, code_snippet, suggestion, issue_hash,
			 is_helpful, reason, correction, contributor, repository, ts_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, ev.FileExtension, ev.Rule, nullStr(ev.CodeSnippet), nullStr(ev.Suggestion),
		ev.IssueHash, boolInt(ev.IsHelpful), nullStr(ev.Reason), nullStr(ev.Correction),
		nullStr(ev.Contributor), nullStr(ev.Repository), tsMs)
	if err != nil {
		return "", fmt.Errorf("failed to insert feedback: %w", err)
	}
	s.logger.Debug("appended feedback",
		"id", id, "extension", ev.FileExtension, "rule", ev.Rule, "helpful", ev.IsHelpful)
	return id, nil
}

// QueryByExtension returns every stored event for one file extension, in
// insertion order.
func (s *Store) QueryByExtension(ctx context.Context, ext string) ([]feedback.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		selectColumns+" FROM review_feedback WHERE file_extension = ? ORDER BY ts_ms, id", ext)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback for %q: %w", ext, err)
	}
	return scanEvents(rows)
}

// QueryAll returns every stored event across all extensions, in insertion
// order.
func (s *Store) QueryAll(ctx context.Context) ([]feedback.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		selectColumns+" FROM review_feedback ORDER BY ts_ms, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	return scanEvents(rows)
}

// CountAll returns the total number of stored events.
func (s *Store) CountAll(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM review_feedback").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count feedback: %w", err)
	}
	return n, nil
}

const selectColumns = `SELECT id, file_extension, rule, code_snippet, suggestion,
	issue_hash, is_helpful, reason, correction, contributor, repository, ts_ms`

func scanEvents(rows *sql.Rows) ([]feedback.Event, error) {
	defer rows.Close()
	var events []feedback.Event
	for rows.Next() {
		var ev feedback.Event
		var snippet, suggestion, reason, correction, contributor, repository sql.NullString
		var helpful int
		if err := rows.Scan(&ev.ID, &ev.FileExtension, &ev.Rule, &snippet, &suggestion,
			&ev.IssueHash, &helpful, &reason, &correction, &contributor, &repository, &ev.TSMs); err != nil {
			return nil, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		ev.CodeSnippet = snippet.String
		ev.Suggestion = suggestion.String
		ev.Reason = reason.String
		ev.Correction = correction.String
		ev.Contributor = contributor.String
		ev.Repository = repository.String
		ev.IsHelpful = helpful != 0
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read feedback rows: %w", err)
	}
	return events, nil
}

func nullStr(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
