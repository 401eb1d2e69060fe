package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/okian/benchboard/internal/adapters/persistence"
	"github.com/okian/benchboard/pkg/metrics"
)

// Map-based, in-memory Store implementation.
//
// State is a two-level map: category -> userID -> best score. All mutations
// take the write lock and, when a persister is configured, write the full
// document before acknowledging. A failed write rolls the mutation back so
// memory and durable state never diverge.
//
// Ordering for leaderboards: score DESC, then userID ASC (deterministic).

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// MemStore implements Store with an in-memory map and synchronous persistence.
type MemStore struct {
	mu        sync.RWMutex
	scores    map[string]map[int64]float64
	persister persistence.Persister
}

// NewMemStore creates an empty store. Call Load to hydrate persisted state.
func NewMemStore(_ context.Context, opts ...Option) *MemStore {
	s := &MemStore{
		scores: make(map[string]map[int64]float64),
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load replaces the in-memory state with the persisted document.
// Without a persister it is a no-op.
func (s *MemStore) Load(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}

	doc, err := s.persister.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	scores := make(map[string]map[int64]float64, len(doc))
	for category, users := range doc {
		inner := make(map[int64]float64, len(users))
		for rawID, score := range users {
			id, err := strconv.ParseInt(rawID, 10, 64)
			if err != nil {
				return fmt.Errorf("%w: bad user id %q in category %q: %w", ErrPersist, rawID, category, err)
			}
			inner[id] = score
		}
		scores[category] = inner
	}

	s.mu.Lock()
	s.scores = scores
	s.mu.Unlock()

	s.publishGauges()
	return nil
}

// UpdateBest stores score when it strictly beats the existing best.
func (s *MemStore) UpdateBest(ctx context.Context, category string, userID int64, score float64) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, categoryExisted := s.scores[category]
	prev, hadPrev := users[userID]
	out := Outcome{Previous: prev, HadPrevious: hadPrev}

	if hadPrev && score <= prev {
		// Rejected: not an error, just not an improvement.
		return out, nil
	}

	if !categoryExisted {
		users = make(map[int64]float64)
		s.scores[category] = users
	}
	users[userID] = score
	if err := s.persistLocked(ctx); err != nil {
		// Roll back so memory matches what is on disk.
		if hadPrev {
			users[userID] = prev
		} else {
			delete(users, userID)
		}
		if !categoryExisted {
			delete(s.scores, category)
		}
		return Outcome{Previous: prev, HadPrevious: hadPrev}, err
	}

	out.Updated = true
	s.publishGaugesLocked()
	return out, nil
}

// Get returns the stored best for (category, userID).
func (s *MemStore) Get(_ context.Context, category string, userID int64) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users, ok := s.scores[category]
	if !ok {
		return 0, ErrNotFound
	}
	score, ok := users[userID]
	if !ok {
		return 0, ErrNotFound
	}
	return score, nil
}

// Remove deletes one user's score in a category.
func (s *MemStore) Remove(ctx context.Context, category string, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, ok := s.scores[category]
	if !ok {
		return ErrNotFound
	}
	prev, ok := users[userID]
	if !ok {
		return ErrNotFound
	}

	delete(users, userID)
	if err := s.persistLocked(ctx); err != nil {
		users[userID] = prev
		return err
	}

	s.publishGaugesLocked()
	return nil
}

// RemoveCategory deletes a whole category.
func (s *MemStore) RemoveCategory(ctx context.Context, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, ok := s.scores[category]
	if !ok {
		return ErrNotFound
	}

	delete(s.scores, category)
	if err := s.persistLocked(ctx); err != nil {
		s.scores[category] = users
		return err
	}

	s.publishGaugesLocked()
	return nil
}

// Categories returns all category names sorted ascending.
func (s *MemStore) Categories(_ context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.scores))
	for category := range s.scores {
		names = append(names, category)
	}
	sort.Strings(names)
	return names
}

// TopN returns up to n entries for a category, best first.
func (s *MemStore) TopN(_ context.Context, category string, n int) ([]Entry, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	entries := collectEntries(s.scores[category])
	s.mu.RUnlock()

	rankEntries(entries)
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// TopAll returns TopN for every non-empty category.
func (s *MemStore) TopAll(_ context.Context, n int) (map[string][]Entry, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	byCategory := make(map[string][]Entry, len(s.scores))
	for category, users := range s.scores {
		if len(users) == 0 {
			continue
		}
		byCategory[category] = collectEntries(users)
	}
	s.mu.RUnlock()

	for category, entries := range byCategory {
		rankEntries(entries)
		if len(entries) > n {
			byCategory[category] = entries[:n]
		}
	}
	return byCategory, nil
}

// History returns category -> best score for one user.
func (s *MemStore) History(_ context.Context, userID int64) (map[string]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]float64)
	for category, users := range s.scores {
		if score, ok := users[userID]; ok {
			out[category] = score
		}
	}
	return out, nil
}

// Count returns the total number of (category, user) entries.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, users := range s.scores {
		total += len(users)
	}
	return total
}

// persistLocked writes the full document. Callers hold the write lock, which
// keeps the written snapshot consistent with the acknowledged state.
func (s *MemStore) persistLocked(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}

	doc := make(persistence.Document, len(s.scores))
	for category, users := range s.scores {
		inner := make(map[string]float64, len(users))
		for id, score := range users {
			inner[strconv.FormatInt(id, 10)] = score
		}
		doc[category] = inner
	}

	start := time.Now()
	err := s.persister.Save(ctx, doc)
	metrics.RecordPersistLatency(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		metrics.RecordPersistError()
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	metrics.RecordPersist()
	return nil
}

func (s *MemStore) publishGauges() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.publishGaugesLocked()
}

func (s *MemStore) publishGaugesLocked() {
	total := 0
	for _, users := range s.scores {
		total += len(users)
	}
	metrics.UpdateCategoriesTotal(len(s.scores))
	metrics.UpdateEntriesTotal(total)
}

// collectEntries copies a category's scores into unranked entries.
func collectEntries(users map[int64]float64) []Entry {
	entries := make([]Entry, 0, len(users))
	for id, score := range users {
		entries = append(entries, Entry{UserID: id, Score: score})
	}
	return entries
}

// rankEntries sorts best-first and assigns 1-based ranks.
func rankEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].UserID < entries[j].UserID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
}
