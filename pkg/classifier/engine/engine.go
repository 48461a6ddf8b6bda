// Package engine orchestrates the tiered classification state machine.
//
// Three tiers run in fixed order per input, short-circuiting on the first
// candidate at or above the confidence threshold:
//
//	exact      — automaton hit on a registered term, fixed high confidence
//	fuzzy      — best similarity against terms and aliases, scaled by a
//	             ceiling below the exact constant
//	contextual — context-term co-occurrence counting, lowest ceiling
//
// A no-match is a valid terminal state, never an error: malformed or empty
// input classifies to the zero Result carrying the best confidence seen
// across tiers for diagnostics.
package engine

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/internalerr"
	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/similarity"
	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/subject"
)

// Tier identifies which matching strategy produced a candidate.
type Tier int

const (
	TierNone Tier = iota
	TierExact
	TierFuzzy
	TierContextual
)

// String returns the tier label used in reports and stores.
func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierFuzzy:
		return "fuzzy"
	case TierContextual:
		return "contextual"
	default:
		return "none"
	}
}

// Candidate is a transient per-tier match proposal.
type Candidate struct {
	Category   string
	Confidence float64
	Tier       Tier
	Term       string // the term or alias that produced the match
	Pos        int    // byte offset for exact hits, -1 otherwise
}

// Result is the terminal state of one classification. A zero Category
// means no candidate cleared the threshold; Confidence then holds the
// best value observed across all tiers.
type Result struct {
	Category   string
	Confidence float64
	Tier       Tier
}

// Matched reports whether a category was assigned.
func (r Result) Matched() bool { return r.Category != "" }

// Params are the tier constants and threshold. All confidences are in
// [0,1]; FuzzyCeiling must not exceed ExactConfidence so a fuzzy match
// can never outrank a genuine exact one.
type Params struct {
	Threshold       float64
	ExactConfidence float64
	FuzzyCeiling    float64
	ContextCeiling  float64
	MinTextRunes    int
	SimWeights      similarity.Weights
}

// DefaultParams returns the documented defaults.
func DefaultParams() Params {
	return Params{
		Threshold:       0.80,
		ExactConfidence: 0.95,
		FuzzyCeiling:    0.80,
		ContextCeiling:  0.65,
		MinTextRunes:    2,
		SimWeights:      similarity.DefaultWeights(),
	}
}

// Contextual confidence ramp: one context hit reaches contextBase +
// contextStep, further hits add contextStep each up to the ceiling.
const (
	contextBase = 0.60
	contextStep = 0.05
)

// Engine evaluates the tier state machine against a subject library.
type Engine struct {
	lib    *subject.Library
	params Params
}

// New creates an engine. A nil or empty library is a fatal construction
// error; classification without categories is meaningless.
func New(lib *subject.Library, params Params) (*Engine, error) {
	if lib == nil || lib.Len() == 0 {
		return nil, fmt.Errorf("engine: %w: empty subject library", internalerr.ErrInvalidInput)
	}
	if params.FuzzyCeiling >= params.ExactConfidence {
		return nil, fmt.Errorf("engine: %w: fuzzy ceiling %.2f must stay below exact confidence %.2f",
			internalerr.ErrInvalidConfig, params.FuzzyCeiling, params.ExactConfidence)
	}
	return &Engine{lib: lib, params: params}, nil
}

// Classify runs the tiers over one document. tokens is the segmented
// form of text and keywords the extracted keyword terms; both may be
// empty, in which case the fuzzy and contextual tiers fall back to the
// raw text.
func (e *Engine) Classify(text string, tokens []string, keywords []string) Result {
	norm := strings.TrimSpace(text)
	if utf8.RuneCountInString(norm) < e.params.MinTextRunes {
		return Result{Tier: TierNone}
	}

	bestObserved := 0.0

	// Tier 1: exact. All exact candidates share the fixed confidence,
	// so the tie-break is the earliest match position.
	if cand, ok := e.exactTier(norm); ok {
		if cand.Confidence > bestObserved {
			bestObserved = cand.Confidence
		}
		if cand.Confidence >= e.params.Threshold {
			return Result{Category: cand.Category, Confidence: cand.Confidence, Tier: TierExact}
		}
	}

	// Tier 2: fuzzy.
	if cand, ok := e.fuzzyTier(norm, keywords); ok {
		if cand.Confidence > bestObserved {
			bestObserved = cand.Confidence
		}
		if cand.Confidence >= e.params.Threshold {
			return Result{Category: cand.Category, Confidence: cand.Confidence, Tier: TierFuzzy}
		}
	}

	// Tier 3: contextual.
	if cand, ok := e.contextTier(norm, tokens); ok {
		if cand.Confidence > bestObserved {
			bestObserved = cand.Confidence
		}
		if cand.Confidence >= e.params.Threshold {
			return Result{Category: cand.Category, Confidence: cand.Confidence, Tier: TierContextual}
		}
	}

	return Result{Confidence: bestObserved, Tier: TierNone}
}

// exactTier picks the earliest automaton hit.
func (e *Engine) exactTier(norm string) (Candidate, bool) {
	hits := e.lib.LookupExact(norm)
	if len(hits) == 0 {
		return Candidate{}, false
	}
	first := hits[0] // LookupExact orders by position
	return Candidate{
		Category:   first.Category,
		Confidence: e.params.ExactConfidence,
		Tier:       TierExact,
		Term:       first.Term,
		Pos:        first.Pos,
	}, true
}

// fuzzyTier scores the raw input and each keyword against every
// category's exact terms and aliases, keeping the best similarity per
// category scaled by the fuzzy ceiling.
func (e *Engine) fuzzyTier(norm string, keywords []string) (Candidate, bool) {
	inputs := make([]string, 0, len(keywords)+1)
	inputs = append(inputs, strings.ToLower(norm))
	for _, kw := range keywords {
		inputs = append(inputs, strings.ToLower(kw))
	}

	var best Candidate
	found := false

	for _, cat := range e.lib.Categories() {
		terms := make([]string, 0, len(cat.ExactTerms)+len(cat.Aliases))
		terms = append(terms, cat.ExactTerms...)
		terms = append(terms, cat.Aliases...)

		bestSim := 0.0
		bestTerm := ""
		for _, term := range terms {
			lowTerm := strings.ToLower(term)
			for _, in := range inputs {
				if sim := similarity.ScoreWeighted(in, lowTerm, e.params.SimWeights); sim > bestSim {
					bestSim = sim
					bestTerm = term
				}
			}
		}

		conf := bestSim * e.params.FuzzyCeiling
		if conf > best.Confidence {
			best = Candidate{
				Category:   cat.Name,
				Confidence: conf,
				Tier:       TierFuzzy,
				Term:       bestTerm,
				Pos:        -1,
			}
			found = true
		}
	}

	return best, found
}

// contextTier counts context-term occurrences in the token stream.
func (e *Engine) contextTier(norm string, tokens []string) (Candidate, bool) {
	stream := strings.ToLower(strings.Join(tokens, ""))
	if stream == "" {
		stream = strings.ToLower(norm)
	}

	var best Candidate
	found := false

	for _, cat := range e.lib.Categories() {
		count := 0
		matched := ""
		for _, term := range cat.ContextTerms {
			lowTerm := strings.ToLower(term)
			if n := strings.Count(stream, lowTerm); n > 0 {
				count += n
				if matched == "" {
					matched = term
				}
			}
		}
		if count == 0 {
			continue
		}

		conf := contextBase + contextStep*float64(count)
		if conf > e.params.ContextCeiling {
			conf = e.params.ContextCeiling
		}
		if conf > best.Confidence {
			best = Candidate{
				Category:   cat.Name,
				Confidence: conf,
				Tier:       TierContextual,
				Term:       matched,
				Pos:        -1,
			}
			found = true
		}
	}

	return best, found
}
