// Package types contains common types used across the application
package types

// Entry represents a leaderboard row as rendered to clients.
type Entry struct {
	Rank   int     `json:"rank"`
	UserID int64   `json:"user_id"`
	Name   string  `json:"name,omitempty"`
	Score  float64 `json:"score"`
}

// SubmitResult reports the outcome of a score submission.
type SubmitResult struct {
	Accepted bool     `json:"accepted"`
	Score    float64  `json:"score"`
	Previous *float64 `json:"previous_score,omitempty"`
}
