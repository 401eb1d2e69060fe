// Package repository defines the score store interface and errors.
package repository

import "github.com/okian/benchboard/internal/adapters/persistence"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithPersister sets the durable backend written on every mutation.
// Without one the store is memory-only (useful in tests).
func WithPersister(p persistence.Persister) Option {
	return func(s *MemStore) {
		s.persister = p
	}
}
