package identity

import (
	"context"
	"sync"
)

// Compile-time interface check.
var _ Resolver = (*StaticResolver)(nil)

// StaticResolver resolves names from an in-memory table. Useful for tests
// and single-tenant deployments without a user directory.
type StaticResolver struct {
	mu    sync.RWMutex
	names map[int64]string
}

// NewStaticResolver creates a resolver seeded with the given names.
func NewStaticResolver(names map[int64]string) *StaticResolver {
	table := make(map[int64]string, len(names))
	for id, name := range names {
		table[id] = name
	}
	return &StaticResolver{names: table}
}

// Set adds or replaces a user's display name.
func (r *StaticResolver) Set(userID int64, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names[userID] = name
}

// DisplayName returns the stored name or ErrUnresolved.
func (r *StaticResolver) DisplayName(_ context.Context, userID int64) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name, ok := r.names[userID]
	if !ok {
		return "", ErrUnresolved
	}
	return name, nil
}
