// Package batch classifies document collections concurrently.
//
// Each worker owns a private classifier instance, so result caches are
// per-worker and the shared subject library and stop-term filter are only
// ever read. Documents are isolated: one unclassifiable document never
// affects the rest of the batch.
package batch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier"
	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/internalerr"
	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/store"
)

const defaultWorkers = 4

// Options configures a Runner.
type Options struct {
	// Classifier is the component template; every worker builds its own
	// instance from it so caches stay worker-local.
	Classifier classifier.Options
	// Workers is the pool size; defaults to 4.
	Workers int
	// Progress, when set, is called after each classified document with
	// the number done so far and the batch total.
	Progress func(done, total int)
}

// Item is the outcome for one document, in input order.
type Item struct {
	Index  int
	Text   string
	Output classifier.Output
}

// Stats summarizes one batch pass.
type Stats struct {
	Total      int
	Matched    int
	CacheHits  int
	TierCounts map[string]int
	Duration   time.Duration
}

// Runner fans documents out over a fixed worker pool.
type Runner struct {
	opts Options
}

// NewRunner validates the template options by constructing a throwaway
// classifier, then returns a runner.
func NewRunner(opts Options) (*Runner, error) {
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if _, err := classifier.New(opts.Classifier); err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	return &Runner{opts: opts}, nil
}

// Run classifies all texts and returns per-document items in input order
// plus aggregate stats. The error is non-nil only for setup failures or
// context cancellation; per-document no-matches are ordinary results.
func (r *Runner) Run(ctx context.Context, texts []string) ([]Item, Stats, error) {
	start := time.Now()
	items := make([]Item, len(texts))
	stats := Stats{Total: len(texts), TierCounts: make(map[string]int)}

	if len(texts) == 0 {
		stats.Duration = time.Since(start)
		return items, stats, nil
	}

	workers := r.opts.Workers
	if workers > len(texts) {
		workers = len(texts)
	}

	indexes := make(chan int)
	errs := make(chan error, workers)
	var done int
	var doneMu sync.Mutex
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := classifier.New(r.opts.Classifier)
			if err != nil {
				errs <- err
				return
			}
			for i := range indexes {
				// Workers write disjoint indexes, no lock needed.
				items[i] = Item{Index: i, Text: texts[i], Output: c.ClassifyAndExtract(texts[i])}

				if r.opts.Progress != nil {
					doneMu.Lock()
					done++
					n := done
					doneMu.Unlock()
					r.opts.Progress(n, len(texts))
				}
			}
		}()
	}

	var runErr error
feed:
	for i := range texts {
		select {
		case indexes <- i:
		case err := <-errs:
			runErr = err
			break feed
		case <-ctx.Done():
			runErr = ctx.Err()
			break feed
		}
	}
	close(indexes)
	wg.Wait()

	if runErr == nil {
		select {
		case runErr = <-errs:
		default:
		}
	}
	if runErr != nil {
		return nil, Stats{}, fmt.Errorf("batch: %w", runErr)
	}

	for _, item := range items {
		if item.Output.Result.Matched() {
			stats.Matched++
		}
		if item.Output.FromCache {
			stats.CacheHits++
		}
		stats.TierCounts[item.Output.Result.Tier.String()]++
	}
	stats.Duration = time.Since(start)
	return items, stats, nil
}

// Persist writes a completed batch to a store as one run and returns the
// saved record.
func Persist(ctx context.Context, st store.Store, source string, startedAt time.Time, items []Item, stats Stats) (store.Run, error) {
	if st == nil {
		return store.Run{}, fmt.Errorf("batch: %w: nil store", internalerr.ErrStoreUnavailable)
	}

	run := store.Run{
		ID:         store.NewRunID(),
		Source:     source,
		StartedAt:  startedAt,
		FinishedAt: startedAt.Add(stats.Duration),
		Total:      int64(stats.Total),
		Matched:    int64(stats.Matched),
		CacheHits:  int64(stats.CacheHits),
	}
	if err := st.SaveRun(ctx, run); err != nil {
		return store.Run{}, err
	}

	rows := make([]store.Row, len(items))
	for i, item := range items {
		rows[i] = store.Row{
			DocIndex:   int64(item.Index),
			Text:       item.Text,
			Category:   item.Output.Result.Category,
			Confidence: item.Output.Result.Confidence,
			Tier:       item.Output.Result.Tier.String(),
			Keywords:   item.Output.KeywordTerms(),
		}
	}
	if err := st.AppendRows(ctx, run.ID, rows); err != nil {
		return store.Run{}, err
	}
	return run, nil
}
