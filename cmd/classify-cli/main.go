// Command classify-cli classifies a batch of documents read from a file
// or stdin, one document per line, and prints a TSV row per document.
// Results can optionally be persisted to a SQLite run store.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier"
	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/batch"
	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/config"
	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/segment"
	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/store/sqlite"
)

func main() {
	var (
		subjects  = flag.String("subjects", "", "Subject library YAML (required)")
		stopPath  = flag.String("stoplist", "", "Stop-word YAML (optional, built-in default)")
		geoPath   = flag.String("geo", "", "Geographic-name YAML (optional, built-in default)")
		cfgPath   = flag.String("config", "", "Settings YAML (optional)")
		input     = flag.String("input", "", "Input file, one document per line (default stdin)")
		dbPath    = flag.String("db", "", "Optional: SQLite path to persist the run")
		workers   = flag.Int("workers", 4, "Worker pool size")
		stripTags = flag.Bool("strip-html", false, "Strip HTML tags from each line before classifying")
		useGse    = flag.Bool("gse", false, "Use the dictionary segmenter instead of the rule-based one")
		gseDicts  = flag.String("gse-dicts", "", "Comma-separated dictionary files for the gse segmenter")
	)
	flag.Parse()

	if *subjects == "" {
		log.Fatal("--subjects required")
	}

	ctx := context.Background()

	loader := config.Loader{
		SubjectsPath: *subjects,
		StoplistPath: *stopPath,
		GeoPath:      *geoPath,
		ConfigPath:   *cfgPath,
	}
	components, err := loader.Load()
	if err != nil {
		log.Fatalf("load configs: %v", err)
	}

	var seg segment.Segmenter = segment.NewSimple()
	if *useGse || *gseDicts != "" {
		var dicts []string
		if *gseDicts != "" {
			dicts = strings.Split(*gseDicts, ",")
		}
		seg, err = segment.NewGse(dicts...)
		if err != nil {
			log.Fatalf("load segmenter: %v", err)
		}
	}

	texts, source, err := readDocuments(*input, *stripTags)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}
	if len(texts) == 0 {
		log.Fatal("no documents to classify")
	}

	runner, err := batch.NewRunner(batch.Options{
		Classifier: classifier.Options{
			Segmenter: seg,
			Library:   components.Library,
			Filter:    components.Filter,
			Config:    components.Config,
		},
		Workers: *workers,
	})
	if err != nil {
		log.Fatalf("setup: %v", err)
	}

	startedAt := time.Now()
	items, stats, err := runner.Run(ctx, texts)
	if err != nil {
		log.Fatalf("classify: %v", err)
	}

	w := bufio.NewWriter(os.Stdout)
	fmt.Fprintln(w, "index\tcategory\tconfidence\ttier\tkeywords")
	for _, item := range items {
		r := item.Output.Result
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%s\t%s\n",
			item.Index, r.Category, r.Confidence, r.Tier, strings.Join(item.Output.KeywordTerms(), ","))
	}
	w.Flush()

	log.Printf("classified %d documents in %s: %d matched, %d cache hits",
		stats.Total, stats.Duration.Round(time.Millisecond), stats.Matched, stats.CacheHits)
	for _, tier := range []string{"exact", "fuzzy", "contextual", "none"} {
		if n := stats.TierCounts[tier]; n > 0 {
			log.Printf("  %-10s %d", tier, n)
		}
	}

	if *dbPath != "" {
		st, err := sqlite.Open(ctx, *dbPath)
		if err != nil {
			log.Fatalf("open store: %v", err)
		}
		defer st.Close()

		run, err := batch.Persist(ctx, st, source, startedAt, items, stats)
		if err != nil {
			log.Fatalf("persist run: %v", err)
		}
		log.Printf("saved run %s to %s", run.ID, *dbPath)
	}
}

// readDocuments loads one document per non-empty line.
func readDocuments(path string, stripTags bool) ([]string, string, error) {
	in := os.Stdin
	source := "stdin"
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, "", err
		}
		defer f.Close()
		in = f
		source = path
	}

	var texts []string
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if stripTags {
			line = stripHTML(line)
		}
		texts = append(texts, line)
	}
	return texts, source, scanner.Err()
}

func stripHTML(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		// Fallback to string if parsing fails
		return s
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)

	return strings.TrimSpace(buf.String())
}
