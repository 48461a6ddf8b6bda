// Package store persists classification runs and their per-document rows.
package store

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
)

// Store is the interface for persisting and querying classification runs
type Store interface {
	Close() error

	// Runs
	SaveRun(ctx context.Context, r Run) error
	GetRun(ctx context.Context, id string) (Run, bool, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	// Per-document rows
	AppendRows(ctx context.Context, runID string, rows []Row) error
	GetRows(ctx context.Context, runID string, limit int) ([]Row, error)
	TierCounts(ctx context.Context, runID string) (map[string]int64, error)
}

// Run records one batch classification pass over a document source.
type Run struct {
	ID         string
	Source     string
	StartedAt  time.Time
	FinishedAt time.Time
	Total      int64
	Matched    int64
	CacheHits  int64
}

// Row is one classified document within a run.
type Row struct {
	RunID      string
	DocIndex   int64
	Text       string
	Category   string
	Confidence float64
	Tier       string
	Keywords   []string
}

// NewRunID returns a lexicographically sortable unique run identifier.
func NewRunID() string {
	return ulid.Make().String()
}
