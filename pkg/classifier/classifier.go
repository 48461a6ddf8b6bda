// Package classifier is the document classification facade.
//
// It wires the segmentation, keyword-extraction, tiered-matching and
// caching components into a single entry point: feed in raw document
// text, get back ranked keywords and a classification result. The
// component packages remain usable on their own for callers that need
// only one stage.
package classifier

import (
	"fmt"

	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/cache"
	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/config"
	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/engine"
	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/internalerr"
	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/keywords"
	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/segment"
	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/similarity"
	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/stopterm"
	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/subject"
)

// Options configures a Classifier instance
type Options struct {
	// Segmenter tokenizes documents; defaults to the rule-based segmenter.
	Segmenter segment.Segmenter
	// Library holds the categories to classify against. Required.
	Library *subject.Library
	// Filter excludes stop terms from keywords; defaults to the built-in
	// lists.
	Filter *stopterm.Filter
	// Config carries thresholds and limits; the zero value means
	// config.Default().
	Config config.Config
}

// Classifier runs the full per-document pipeline: segment, extract
// keywords, classify, memoize. Safe for concurrent use.
type Classifier struct {
	seg       segment.Segmenter
	extractor *keywords.Extractor
	engine    *engine.Engine
	cache     *cache.Cache // nil when caching is disabled
	cfg       config.Config
}

// Output is the combined result for one document.
type Output struct {
	Keywords  []keywords.Keyword
	Result    engine.Result
	FromCache bool
}

// KeywordTerms returns just the ordered keyword strings.
func (o Output) KeywordTerms() []string { return keywords.Terms(o.Keywords) }

// New creates a classifier from the given components.
func New(opts Options) (*Classifier, error) {
	cfg := opts.Config
	if cfg == (config.Config{}) {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Library == nil {
		return nil, fmt.Errorf("classifier: %w: subject library is required", internalerr.ErrInvalidInput)
	}

	eng, err := engine.New(opts.Library, engine.Params{
		Threshold:       cfg.MinConfidence,
		ExactConfidence: cfg.ExactConfidence,
		FuzzyCeiling:    cfg.FuzzyCeiling,
		ContextCeiling:  cfg.ContextCeiling,
		MinTextRunes:    cfg.MinTextLength,
		SimWeights:      similarity.Weights{Edit: cfg.EditWeight, Sequence: cfg.SequenceWeight},
	})
	if err != nil {
		return nil, err
	}

	seg := opts.Segmenter
	if seg == nil {
		seg = segment.NewSimple()
	}
	filter := opts.Filter
	if filter == nil {
		filter = stopterm.NewDefault()
	}

	var resultCache *cache.Cache
	if cfg.CacheSize > 0 {
		resultCache, err = cache.New(cfg.CacheSize)
		if err != nil {
			return nil, err
		}
	}

	return &Classifier{
		seg:       seg,
		extractor: keywords.NewExtractor(filter),
		engine:    eng,
		cache:     resultCache,
		cfg:       cfg,
	}, nil
}

// NewFromComponents creates a classifier from loader output.
func NewFromComponents(comp *config.Components, seg segment.Segmenter) (*Classifier, error) {
	if comp == nil {
		return nil, fmt.Errorf("classifier: %w: nil components", internalerr.ErrInvalidInput)
	}
	return New(Options{
		Segmenter: seg,
		Library:   comp.Library,
		Filter:    comp.Filter,
		Config:    comp.Config,
	})
}

// ClassifyAndExtract runs the pipeline over one document. Identical
// normalized inputs return the memoized output; a no-match result is a
// valid outcome, not an error.
func (c *Classifier) ClassifyAndExtract(text string) Output {
	if c.cache != nil {
		if e, ok := c.cache.Get(text); ok {
			return Output{Keywords: e.Keywords, Result: e.Result, FromCache: true}
		}
	}

	tokens := c.seg.Segment(text)
	kws := c.extractor.Extract(tokens, c.cfg.KeywordTopN)
	result := c.engine.Classify(text, tokens, keywords.Terms(kws))

	if c.cache != nil {
		c.cache.Put(text, cache.Entry{Keywords: kws, Result: result})
	}
	return Output{Keywords: kws, Result: result}
}

// Classify returns only the classification result for one document.
func (c *Classifier) Classify(text string) engine.Result {
	return c.ClassifyAndExtract(text).Result
}

// ExtractKeywords returns only the ranked keywords for one document.
func (c *Classifier) ExtractKeywords(text string) []keywords.Keyword {
	return c.ClassifyAndExtract(text).Keywords
}

// CacheLen returns the number of memoized entries, 0 when caching is
// disabled.
func (c *Classifier) CacheLen() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Len()
}

// ResetCache drops all memoized entries.
func (c *Classifier) ResetCache() {
	if c.cache != nil {
		c.cache.Purge()
	}
}
