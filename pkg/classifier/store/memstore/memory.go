// Package memstore provides an in-memory Store implementation for tests
// and short-lived runs.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/internalerr"
	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/store"
)

// memStore implements the Store interface in memory
type memStore struct {
	mu   sync.RWMutex
	runs map[string]store.Run
	rows map[string][]store.Row
}

// New creates an empty in-memory store.
func New() store.Store {
	return &memStore{
		runs: make(map[string]store.Run),
		rows: make(map[string][]store.Row),
	}
}

// Close is a no-op for the in-memory store.
func (m *memStore) Close() error { return nil }

// SaveRun inserts or replaces a run record.
func (m *memStore) SaveRun(_ context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("memstore: %w: run id is empty", internalerr.ErrInvalidInput)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[r.ID] = r
	return nil
}

// GetRun retrieves a run by ID.
func (m *memStore) GetRun(_ context.Context, id string) (store.Run, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.runs[id]
	return r, ok, nil
}

// ListRuns returns runs ordered by ID descending (newest first, since
// run IDs sort chronologically).
func (m *memStore) ListRuns(_ context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]store.Run, 0, len(m.runs))
	for _, r := range m.runs {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// AppendRows adds per-document rows to a run.
func (m *memStore) AppendRows(_ context.Context, runID string, rows []store.Row) error {
	if runID == "" {
		return fmt.Errorf("memstore: %w: run id is empty", internalerr.ErrInvalidInput)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.runs[runID]; !ok {
		return fmt.Errorf("memstore: %w: run %s", internalerr.ErrNotFound, runID)
	}
	for _, row := range rows {
		row.RunID = runID
		row.Keywords = append([]string(nil), row.Keywords...)
		m.rows[runID] = append(m.rows[runID], row)
	}
	return nil
}

// GetRows returns rows for a run in document order.
func (m *memStore) GetRows(_ context.Context, runID string, limit int) ([]store.Row, error) {
	if limit <= 0 {
		limit = 100
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := m.rows[runID]
	if len(rows) > limit {
		rows = rows[:limit]
	}
	out := make([]store.Row, len(rows))
	for i, row := range rows {
		row.Keywords = append([]string(nil), row.Keywords...)
		out[i] = row
	}
	return out, nil
}

// TierCounts aggregates row counts per tier label for a run.
func (m *memStore) TierCounts(_ context.Context, runID string) (map[string]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[string]int64)
	for _, row := range m.rows[runID] {
		counts[row.Tier]++
	}
	return counts, nil
}
