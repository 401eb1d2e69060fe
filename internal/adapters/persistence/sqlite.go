package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

// Compile-time interface check.
var _ Persister = (*SQLitePersister)(nil)

// SQLitePersister stores the document as a single row in a SQLite database.
// The full document replaces the row on every save, matching the
// load-everything/save-everything semantics of the store.
type SQLitePersister struct {
	db *sql.DB
}

// NewSQLitePersister opens (or creates) a SQLite database at the given DSN
// and initialises the schema. Use ":memory:" for an in-memory database.
func NewSQLitePersister(dsn string) (*SQLitePersister, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite: %w", ErrLoad, err)
	}
	// A single connection keeps ":memory:" databases coherent and serializes
	// writers, which is all the single-row schema needs.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS benchboard_state (
			id  INTEGER PRIMARY KEY CHECK (id = 1),
			doc TEXT NOT NULL
		)
	`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: create table: %w", ErrLoad, err)
	}

	return &SQLitePersister{db: db}, nil
}

// Load reads the document row. An empty table yields an empty document.
func (p *SQLitePersister) Load(ctx context.Context) (Document, error) {
	var raw string
	err := p.db.QueryRowContext(ctx,
		`SELECT doc FROM benchboard_state WHERE id = 1`,
	).Scan(&raw)

	if err == sql.ErrNoRows {
		return Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

// Save replaces the document row.
func (p *SQLitePersister) Save(ctx context.Context, doc Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}

	_, err = p.db.ExecContext(ctx,
		`INSERT INTO benchboard_state (id, doc) VALUES (1, ?)
		 ON CONFLICT (id) DO UPDATE SET doc = excluded.doc`,
		string(data),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	return nil
}

// Name identifies the backend.
func (p *SQLitePersister) Name() string { return "sqlite" }

// Close closes the underlying database connection.
func (p *SQLitePersister) Close() error {
	return p.db.Close()
}
