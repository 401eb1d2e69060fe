// Package identity resolves opaque user ids to display names for rendering.
//
// Resolution is strictly best-effort: a failed lookup drops one row from a
// rendered leaderboard, it never fails the whole response.
package identity

import "context"

// Resolver maps a user id to a display name.
type Resolver interface {
	// DisplayName returns the display name for userID.
	// Returns ErrUnresolved when the user cannot be resolved; callers are
	// expected to skip the entry rather than propagate the error.
	DisplayName(ctx context.Context, userID int64) (string, error)
}
