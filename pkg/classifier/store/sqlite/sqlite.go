// Package sqlite provides a SQLite-backed Store implementation.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"

	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and creates the
// schema if missing.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	source TEXT,
	started_at TEXT,
	finished_at TEXT,
	total INTEGER DEFAULT 0,
	matched INTEGER DEFAULT 0,
	cache_hits INTEGER DEFAULT 0
);

CREATE TABLE IF NOT EXISTS run_rows (
	run_id TEXT NOT NULL,
	doc_index INTEGER NOT NULL,
	text TEXT,
	category TEXT,
	confidence REAL,
	tier TEXT,
	keywords TEXT,
	PRIMARY KEY(run_id, doc_index),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_run_rows_tier ON run_rows(run_id, tier);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun inserts or updates a run record.
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO runs (id, source, started_at, finished_at, total, matched, cache_hits)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	source=excluded.source,
	started_at=excluded.started_at,
	finished_at=excluded.finished_at,
	total=excluded.total,
	matched=excluded.matched,
	cache_hits=excluded.cache_hits;
`,
		r.ID,
		r.Source,
		formatTime(r.StartedAt),
		formatTime(r.FinishedAt),
		r.Total,
		r.Matched,
		r.CacheHits,
	)
	return err
}

// GetRun retrieves a run by ID.
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	var (
		r        store.Run
		started  string
		finished string
	)
	err := s.db.QueryRowContext(ctx, `
SELECT id, source, started_at, finished_at, total, matched, cache_hits
FROM runs
WHERE id = ?;
`, id).Scan(&r.ID, &r.Source, &started, &finished, &r.Total, &r.Matched, &r.CacheHits)
	if err == sql.ErrNoRows {
		return store.Run{}, false, nil
	}
	if err != nil {
		return store.Run{}, false, err
	}
	r.StartedAt = parseTime(started)
	r.FinishedAt = parseTime(finished)
	return r, true, nil
}

// ListRuns returns runs newest first; run IDs sort chronologically.
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, source, started_at, finished_at, total, matched, cache_hits
FROM runs
ORDER BY id DESC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []store.Run
	for rows.Next() {
		var (
			r        store.Run
			started  string
			finished string
		)
		if err := rows.Scan(&r.ID, &r.Source, &started, &finished, &r.Total, &r.Matched, &r.CacheHits); err != nil {
			return nil, err
		}
		r.StartedAt = parseTime(started)
		r.FinishedAt = parseTime(finished)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// AppendRows adds per-document rows to a run in a single transaction.
func (s *sqliteStore) AppendRows(ctx context.Context, runID string, rowsIn []store.Row) error {
	if len(rowsIn) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO run_rows (run_id, doc_index, text, category, confidence, tier, keywords)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(run_id, doc_index) DO UPDATE SET
	text=excluded.text,
	category=excluded.category,
	confidence=excluded.confidence,
	tier=excluded.tier,
	keywords=excluded.keywords;
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rowsIn {
		kwJSON, err := json.Marshal(row.Keywords)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, runID, row.DocIndex, row.Text, row.Category, row.Confidence, row.Tier, string(kwJSON)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetRows returns rows for a run in document order.
func (s *sqliteStore) GetRows(ctx context.Context, runID string, limit int) ([]store.Row, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT run_id, doc_index, text, category, confidence, tier, keywords
FROM run_rows
WHERE run_id = ?
ORDER BY doc_index ASC
LIMIT ?;
`, runID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Row
	for rows.Next() {
		var (
			row    store.Row
			kwJSON string
		)
		if err := rows.Scan(&row.RunID, &row.DocIndex, &row.Text, &row.Category, &row.Confidence, &row.Tier, &kwJSON); err != nil {
			return nil, err
		}
		if kwJSON != "" {
			if err := json.Unmarshal([]byte(kwJSON), &row.Keywords); err != nil {
				return nil, err
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// TierCounts aggregates row counts per tier label for a run.
func (s *sqliteStore) TierCounts(ctx context.Context, runID string) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT tier, COUNT(*)
FROM run_rows
WHERE run_id = ?
GROUP BY tier;
`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var (
			tier  string
			count int64
		)
		if err := rows.Scan(&tier, &count); err != nil {
			return nil, err
		}
		counts[tier] = count
	}
	return counts, rows.Err()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
