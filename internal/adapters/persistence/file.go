package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Default file persister configuration constants.
const (
	defaultFileMode = os.FileMode(0o644)
)

// Compile-time interface check.
var _ Persister = (*FilePersister)(nil)

// FilePersister stores the document as a single JSON file. Writes go to a
// temp file in the same directory followed by a rename, so a crash mid-write
// never leaves a truncated document behind.
type FilePersister struct {
	path string
	mode os.FileMode
}

// FileOption applies a configuration option to the FilePersister.
type FileOption func(*FilePersister)

// WithFileMode sets the permission bits used for the document file.
func WithFileMode(mode os.FileMode) FileOption {
	return func(p *FilePersister) {
		if mode != 0 {
			p.mode = mode
		}
	}
}

// NewFilePersister creates a persister writing to path.
func NewFilePersister(path string, opts ...FileOption) *FilePersister {
	p := &FilePersister{
		path: path,
		mode: defaultFileMode,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Load reads the document from disk. A missing file yields an empty document.
func (p *FilePersister) Load(_ context.Context) (Document, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

// Save writes the document atomically.
func (p *FilePersister) Save(_ context.Context, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}

	dir := filepath.Dir(p.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(p.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	if err := os.Chmod(tmpName, p.mode); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	if err := os.Rename(tmpName, p.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	return nil
}

// Name identifies the backend.
func (p *FilePersister) Name() string { return "file" }

// Close is a no-op for the file persister.
func (p *FilePersister) Close() error { return nil }
