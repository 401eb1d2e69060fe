// Package persistence defines the durable snapshot contract for the score
// store. The whole state is written as one document on every mutation and
// read back once at startup.
package persistence

import "context"

// Document is the full persisted state: category -> user id (decimal string)
// -> best score. User ids are serialized as strings so the document survives
// JSON round-trips without key-type surprises.
type Document map[string]map[string]float64

// Persister loads and saves the full leaderboard document.
type Persister interface {
	// Load reads the last saved document. A missing backing file or empty
	// database yields an empty, non-nil Document.
	Load(ctx context.Context) (Document, error)

	// Save durably writes the full document, replacing any prior state.
	Save(ctx context.Context, doc Document) error

	// Name identifies the backend for logs and stats.
	Name() string

	// Close releases backend resources.
	Close() error
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for category, scores := range d {
		inner := make(map[string]float64, len(scores))
		for id, score := range scores {
			inner[id] = score
		}
		out[category] = inner
	}
	return out
}
