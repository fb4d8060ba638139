// Package journal defines the fetch journal: a persistent log of every
// remote lookup outcome, grouped by pipeline run.
package journal

import (
	"context"
	"time"
)

// Entry is one lookup outcome.
type Entry struct {
	RunID     string
	Source    string
	Query     string
	Status    string
	Records   int
	Error     string
	CreatedAt time.Time
}

// Journal stores and lists lookup outcomes. Implementations are safe for
// concurrent use.
type Journal interface {
	// Add records an outcome. A zero CreatedAt is set to the current time.
	Add(ctx context.Context, e Entry) error

	// Latest returns the newest entries first. If runID is not empty,
	// only entries of that run are returned. A limit below one means
	// no limit.
	Latest(ctx context.Context, runID string, limit int) ([]Entry, error)

	// LastRun returns the id of the newest run or an empty string.
	LastRun(ctx context.Context) (string, error)

	// Close releases the storage.
	Close() error
}
