// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/okian/benchboard/internal/adapters/identity"
	"github.com/okian/benchboard/internal/adapters/persistence"
	repository "github.com/okian/benchboard/internal/adapters/repository"
	"github.com/okian/benchboard/internal/domain/model"
	"github.com/okian/benchboard/internal/domain/types"
	"github.com/okian/benchboard/pkg/logger"
	"github.com/okian/benchboard/pkg/metrics"
)

// Default facade configuration constants.
const (
	defaultLeaderboardSize = 10 // entries per single-category view
	defaultOverviewSize    = 3  // entries per category in the overview
)

// Service implements the API dependencies for the benchmark leaderboard.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     *repository.MemStore
	persister persistence.Persister
	resolver  identity.Resolver

	// Configuration
	leaderboardSize int
	overviewSize    int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithPersister sets the durable backend for the score store.
func WithPersister(p persistence.Persister) Option {
	return func(s *Service) {
		s.persister = p
	}
}

// WithResolver sets the identity resolver used when rendering leaderboards.
// Without one, entries are rendered by user id only and nothing is filtered.
func WithResolver(r identity.Resolver) Option {
	return func(s *Service) {
		s.resolver = r
	}
}

// WithLeaderboardSize sets the default single-category leaderboard length.
func WithLeaderboardSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.leaderboardSize = n
		}
	}
}

// WithOverviewSize sets the per-category length of the overview.
func WithOverviewSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.overviewSize = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		leaderboardSize: defaultLeaderboardSize,
		overviewSize:    defaultOverviewSize,
		logger:          nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	var storeOpts []repository.Option
	if s.persister != nil {
		storeOpts = append(storeOpts, repository.WithPersister(s.persister))
	}
	s.store = repository.NewMemStore(context.Background(), storeOpts...)

	return s
}

// Start hydrates the store from persisted state.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting benchmark leaderboard service...")

	if err := s.store.Load(ctx); err != nil {
		return err
	}

	s.started = true
	s.logger.Info(ctx, "benchmark leaderboard service started",
		logger.Int("categories", len(s.store.Categories(ctx))),
		logger.Int("entries", s.store.Count(ctx)),
		logger.String("persistence", s.persisterName()),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping benchmark leaderboard service...")

	if s.persister != nil {
		if err := s.persister.Close(); err != nil {
			s.logger.Error(ctx, "failed to close persister", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(ctx, "benchmark leaderboard service stopped")
}

// SubmitScore records a submission when it beats the user's stored best.
func (s *Service) SubmitScore(ctx context.Context, sub model.Submission) (types.SubmitResult, error) {
	start := time.Now()
	out, err := s.store.UpdateBest(ctx, sub.Category, sub.UserID, sub.Score)
	metrics.RecordSubmitLatency(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		s.log().Error(ctx, "score submission failed",
			logger.String("category", sub.Category),
			logger.Int64("userID", sub.UserID),
			logger.Error(err),
		)
		return types.SubmitResult{}, err
	}

	result := types.SubmitResult{Accepted: out.Updated, Score: sub.Score}
	if out.HadPrevious {
		prev := out.Previous
		result.Previous = &prev
	}

	if out.Updated {
		metrics.RecordScoreAccepted()
		s.log().Debug(ctx, "score accepted",
			logger.String("category", sub.Category),
			logger.Int64("userID", sub.UserID),
			logger.Float64("score", sub.Score),
		)
	} else {
		metrics.RecordScoreRejected()
		s.log().Debug(ctx, "score rejected",
			logger.String("category", sub.Category),
			logger.Int64("userID", sub.UserID),
			logger.Float64("score", sub.Score),
			logger.Float64("best", out.Previous),
		)
	}

	return result, nil
}

// Leaderboard returns the top entries for one category. A non-positive n
// falls back to the configured default length.
func (s *Service) Leaderboard(ctx context.Context, category string, n int) ([]types.Entry, error) {
	if n < 1 {
		n = s.leaderboardSize
	}

	entries, err := s.store.TopN(ctx, category, n)
	if err != nil {
		return nil, err
	}
	return s.resolveEntries(ctx, entries), nil
}

// Overview returns the top entries for every non-empty category. Categories
// whose entries all fail identity resolution are omitted.
func (s *Service) Overview(ctx context.Context, n int) (map[string][]types.Entry, error) {
	if n < 1 {
		n = s.overviewSize
	}

	byCategory, err := s.store.TopAll(ctx, n)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]types.Entry, len(byCategory))
	for category, entries := range byCategory {
		resolved := s.resolveEntries(ctx, entries)
		if len(resolved) == 0 {
			continue
		}
		out[category] = resolved
	}
	return out, nil
}

// Categories returns all category names sorted ascending.
func (s *Service) Categories(ctx context.Context) []string {
	return s.store.Categories(ctx)
}

// History returns category -> best score for one user.
func (s *Service) History(ctx context.Context, userID int64) (map[string]float64, error) {
	return s.store.History(ctx, userID)
}

// DeleteScore removes one user's score in a category.
func (s *Service) DeleteScore(ctx context.Context, category string, userID int64) error {
	if err := s.store.Remove(ctx, category, userID); err != nil {
		return err
	}

	metrics.RecordScoreDeleted(1)
	s.log().Info(ctx, "score deleted",
		logger.String("category", category),
		logger.Int64("userID", userID),
	)
	return nil
}

// DeleteCategory removes a whole category.
func (s *Service) DeleteCategory(ctx context.Context, category string) error {
	before := s.store.Count(ctx)
	if err := s.store.RemoveCategory(ctx, category); err != nil {
		return err
	}

	metrics.RecordScoreDeleted(before - s.store.Count(ctx))
	s.log().Info(ctx, "category deleted", logger.String("category", category))
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	categories := s.store.Categories(ctx)
	entries := s.store.Count(ctx)

	metrics.UpdateCategoriesTotal(len(categories))
	metrics.UpdateEntriesTotal(entries)

	return map[string]interface{}{
		"started":     s.started,
		"categories":  len(categories),
		"entries":     entries,
		"persistence": s.persisterName(),
	}
}

// resolveEntries converts store entries to API entries, attaching display
// names. With a resolver configured, entries whose lookup fails are dropped;
// ranks keep their store-assigned positions so the remaining rows do not
// shift up. The store lock is never held here: entries are already a copy.
func (s *Service) resolveEntries(ctx context.Context, entries []repository.Entry) []types.Entry {
	out := make([]types.Entry, 0, len(entries))
	for _, e := range entries {
		row := types.Entry{Rank: e.Rank, UserID: e.UserID, Score: e.Score}

		if s.resolver != nil {
			metrics.RecordIdentityLookup()
			name, err := s.resolver.DisplayName(ctx, e.UserID)
			if err != nil {
				metrics.RecordIdentityLookupError()
				s.log().Debug(ctx, "skipping unresolved user",
					logger.Int64("userID", e.UserID),
					logger.Error(err),
				)
				continue
			}
			row.Name = name
		}

		out = append(out, row)
	}
	return out
}

func (s *Service) persisterName() string {
	if s.persister == nil {
		return "none"
	}
	return s.persister.Name()
}

func (s *Service) log() logger.Logger {
	if s.logger == nil {
		return logger.Get()
	}
	return s.logger
}
