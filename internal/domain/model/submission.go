// Package model contains domain models passed between layers.
package model

// Submission represents a benchmark score submitted by a user.
// Category is an arbitrary case-sensitive token, e.g. "cpu" or "gpu".
type Submission struct {
	Category string  // benchmark category
	UserID   int64   // opaque user identifier
	Score    float64 // submitted score
}
