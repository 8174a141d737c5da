// Package audit persists a conversion log in SQLite: which documents
// were converted, when, and with what outcome.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Conversion outcome statuses.
const (
	StatusInProgress = "in_progress"
	StatusSuccess    = "success"
	StatusFailure    = "failure"
)

// Document represents a row in the documents table.
type Document struct {
	ID        int64  `json:"id"`
	Path      string `json:"path"`
	Filename  string `json:"filename"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Attempt represents a row in the conversions table.
type Attempt struct {
	ID         int64  `json:"id"`
	DocumentID int64  `json:"document_id"`
	Status     string `json:"status"`
	Detail     string `json:"detail,omitempty"`
	OutputPath string `json:"output_path,omitempty"`
	DurationMS int64  `json:"duration_ms"`
	CreatedAt  string `json:"created_at"`
}

// Store wraps the SQLite database holding the audit log.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the audit database at the given path and
// initialises the schema.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	// Connection pool settings for SQLite.
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertDocument inserts or updates a document record keyed by path.
// Returns the document ID.
func (s *Store) UpsertDocument(ctx context.Context, doc Document) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (path, filename, title, author)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			filename = excluded.filename,
			title = excluded.title,
			author = excluded.author,
			updated_at = CURRENT_TIMESTAMP
	`, doc.Path, doc.Filename, doc.Title, doc.Author)
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	// If UPSERT did an UPDATE, LastInsertId may not reflect the existing row.
	if id == 0 {
		row := s.db.QueryRowContext(ctx, "SELECT id FROM documents WHERE path = ?", doc.Path)
		if err := row.Scan(&id); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// RecordAttempt appends a conversion attempt for a document.
func (s *Store) RecordAttempt(ctx context.Context, a Attempt) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO conversions (document_id, status, detail, output_path, duration_ms)
		VALUES (?, ?, ?, ?, ?)
	`, a.DocumentID, a.Status, a.Detail, a.OutputPath, a.DurationMS)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// FinishAttempt updates the status, detail, and duration of an attempt
// opened with StatusInProgress.
func (s *Store) FinishAttempt(ctx context.Context, id int64, status, detail string, duration time.Duration) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE conversions SET status = ?, detail = ?, duration_ms = ? WHERE id = ?
	`, status, detail, duration.Milliseconds(), id)
	return err
}

// Attempts returns the conversion attempts for a document, most recent
// first.
func (s *Store) Attempts(ctx context.Context, documentID int64) ([]Attempt, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, status, detail, output_path, duration_ms, created_at
		FROM conversions WHERE document_id = ?
		ORDER BY created_at DESC, id DESC
	`, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		var detail, output sql.NullString
		if err := rows.Scan(&a.ID, &a.DocumentID, &a.Status, &detail, &output,
			&a.DurationMS, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Detail = detail.String
		a.OutputPath = output.String
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// ListDocuments returns all documents ordered by last update, most
// recent first.
func (s *Store) ListDocuments(ctx context.Context) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, path, filename, title, author, created_at, updated_at
		FROM documents ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.Path, &d.Filename, &d.Title, &d.Author,
			&d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// Stats holds counts of key audit objects.
type Stats struct {
	Documents int `json:"documents"`
	Successes int `json:"successes"`
	Failures  int `json:"failures"`
}

// Stats returns document and outcome counts.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	queries := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM documents", &stats.Documents},
		{"SELECT COUNT(*) FROM conversions WHERE status = 'success'", &stats.Successes},
		{"SELECT COUNT(*) FROM conversions WHERE status = 'failure'", &stats.Failures},
	}
	for _, q := range queries {
		if err := s.db.QueryRowContext(ctx, q.query).Scan(q.dest); err != nil {
			return nil, fmt.Errorf("counting %s: %w", q.query, err)
		}
	}
	return stats, nil
}
