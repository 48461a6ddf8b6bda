// Command run-report summarizes persisted classification runs: run
// listings, tier distributions, and per-document rows for a single run.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/store"
	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/store/sqlite"
)

func main() {
	var (
		dbPath = flag.String("db", "", "SQLite run store (required)")
		runID  = flag.String("run", "", "Show details for one run")
		limit  = flag.Int("limit", 20, "Maximum runs or rows to print")
	)
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("--db required")
	}

	ctx := context.Background()
	st, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	if *runID != "" {
		if err := printRun(ctx, st, *runID, *limit); err != nil {
			log.Fatal(err)
		}
		return
	}
	if err := printRuns(ctx, st, *limit); err != nil {
		log.Fatal(err)
	}
}

func printRuns(ctx context.Context, st store.Store, limit int) error {
	runs, err := st.ListRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	fmt.Printf("%-26s  %-20s  %8s  %8s  %6s  %s\n",
		"RUN", "STARTED", "TOTAL", "MATCHED", "HITS", "SOURCE")
	for _, r := range runs {
		fmt.Printf("%-26s  %-20s  %8d  %8d  %6d  %s\n",
			r.ID, formatTime(r.StartedAt), r.Total, r.Matched, r.CacheHits, r.Source)
	}
	return nil
}

func printRun(ctx context.Context, st store.Store, id string, limit int) error {
	run, found, err := st.GetRun(ctx, id)
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}
	if !found {
		return fmt.Errorf("run %s not found", id)
	}

	fmt.Printf("run %s\n", run.ID)
	fmt.Printf("  source:     %s\n", run.Source)
	fmt.Printf("  started:    %s\n", formatTime(run.StartedAt))
	fmt.Printf("  finished:   %s\n", formatTime(run.FinishedAt))
	fmt.Printf("  total:      %d\n", run.Total)
	fmt.Printf("  matched:    %d (%.1f%%)\n", run.Matched, percent(run.Matched, run.Total))
	fmt.Printf("  cache hits: %d\n", run.CacheHits)

	counts, err := st.TierCounts(ctx, id)
	if err != nil {
		return fmt.Errorf("tier counts: %w", err)
	}
	fmt.Println("  tiers:")
	for _, tier := range []string{"exact", "fuzzy", "contextual", "none"} {
		if n, ok := counts[tier]; ok {
			fmt.Printf("    %-10s %d (%.1f%%)\n", tier, n, percent(n, run.Total))
		}
	}

	rows, err := st.GetRows(ctx, id, limit)
	if err != nil {
		return fmt.Errorf("get rows: %w", err)
	}
	if len(rows) > 0 {
		fmt.Println("  documents:")
		for _, row := range rows {
			category := row.Category
			if category == "" {
				category = "-"
			}
			fmt.Printf("    [%d] %s -> %s (%.2f, %s) keywords: %s\n",
				row.DocIndex, truncate(row.Text, 40), category, row.Confidence, row.Tier,
				strings.Join(row.Keywords, ","))
		}
	}
	return nil
}

func percent(n, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
