// Package repository defines the score store interface and errors.
package repository

import "context"

// Entry represents a leaderboard row.
type Entry struct {
	Rank   int
	UserID int64
	Score  float64
}

// Outcome reports the result of a best-score update.
type Outcome struct {
	// Updated is true when the submitted score was stored.
	Updated bool
	// Previous holds the prior best when HadPrevious is true.
	Previous    float64
	HadPrevious bool
}

// Store provides read/write access to per-category best scores.
type Store interface {
	// UpdateBest stores score for (category, userID) when it strictly beats
	// the existing best, or when no best exists. The outcome carries the
	// prior score so callers can report it. Accepted updates are persisted
	// before the call returns; a persist failure rolls the update back.
	UpdateBest(ctx context.Context, category string, userID int64, score float64) (Outcome, error)

	// Get returns the stored best for (category, userID).
	// Returns ErrNotFound when absent.
	Get(ctx context.Context, category string, userID int64) (float64, error)

	// Remove deletes one user's score in a category.
	// Returns ErrNotFound when absent; nothing is persisted in that case.
	Remove(ctx context.Context, category string, userID int64) error

	// RemoveCategory deletes a whole category.
	// Returns ErrNotFound when absent; nothing is persisted in that case.
	RemoveCategory(ctx context.Context, category string) error

	// Categories returns all category names sorted ascending.
	Categories(ctx context.Context) []string

	// TopN returns up to n entries for a category ordered by score desc,
	// ties broken by userID asc. An absent or empty category yields an
	// empty slice.
	TopN(ctx context.Context, category string, n int) ([]Entry, error)

	// TopAll returns TopN for every category with at least one entry.
	TopAll(ctx context.Context, n int) (map[string][]Entry, error)

	// History returns category -> best score for one user.
	History(ctx context.Context, userID int64) (map[string]float64, error)

	// Count returns the total number of (category, user) entries.
	Count(ctx context.Context) int
}
