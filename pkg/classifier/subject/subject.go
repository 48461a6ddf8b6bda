// Package subject holds the category library and its exact-match automaton.
//
// A Library is built once from a term source and is immutable afterward:
// the Aho-Corasick automaton over the union of all exact terms is compiled
// at load time and never mutated, so lookups are safe for concurrent use.
// Construction is O(total term length), lookup is O(input length)
// regardless of how many categories are registered.
package subject

import (
	"fmt"
	"sort"
	"strings"

	ahocorasick "github.com/BobuSumisu/aho-corasick"

	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/internalerr"
)

// Category is one classification target: a canonical name, the literal
// terms that identify it directly, and the context terms whose
// co-occurrence merely suggests it.
type Category struct {
	ID           string
	Name         string
	ExactTerms   []string
	ContextTerms []string

	// Aliases are abbreviation/variant forms considered by the fuzzy
	// tier only; they are deliberately kept out of the exact automaton
	// so a short alias like "AI" cannot claim exact-tier confidence.
	Aliases []string
}

// TermPair is one row of the load source: a category name and one exact
// term registered against it.
type TermPair struct {
	Category string
	Term     string
}

// Library is the compiled category collection.
type Library struct {
	cats   []Category
	byName map[string]int

	trie     *ahocorasick.Trie
	patterns []string // unique lowercased exact terms, automaton pattern order
	patCats  [][]int  // pattern index -> owning category indices
}

// Hit is one exact-term occurrence found in an input.
type Hit struct {
	Category string // canonical category name
	Term     string // the registered term that matched
	Pos      int    // byte offset of the match in the normalized input
}

// Load groups an ordered (category, term) pair sequence into categories,
// preserving first-appearance order, and compiles the library. Context
// term pairs may be supplied the same way; categories appearing only in
// the context sequence are rejected since exact_terms must be non-empty.
func Load(exact []TermPair, context []TermPair) (*Library, error) {
	var cats []Category
	index := make(map[string]int)

	for _, p := range exact {
		name := strings.TrimSpace(p.Category)
		term := strings.TrimSpace(p.Term)
		if name == "" || term == "" {
			return nil, fmt.Errorf("%w: blank category or term in pair (%q, %q)", internalerr.ErrLibraryLoad, p.Category, p.Term)
		}
		i, ok := index[name]
		if !ok {
			i = len(cats)
			index[name] = i
			cats = append(cats, Category{ID: strings.ToLower(name), Name: name})
		}
		cats[i].ExactTerms = appendUnique(cats[i].ExactTerms, term)
	}

	for _, p := range context {
		name := strings.TrimSpace(p.Category)
		term := strings.TrimSpace(p.Term)
		if name == "" || term == "" {
			continue
		}
		i, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("%w: context term %q for unknown category %q", internalerr.ErrLibraryLoad, term, name)
		}
		cats[i].ContextTerms = appendUnique(cats[i].ContextTerms, term)
	}

	return New(cats)
}

// New compiles a library from fully-formed categories. It fails when the
// set is empty, a canonical name repeats, or a category has no exact terms.
func New(cats []Category) (*Library, error) {
	if len(cats) == 0 {
		return nil, fmt.Errorf("%w: no categories in source", internalerr.ErrLibraryLoad)
	}

	lib := &Library{
		cats:   make([]Category, len(cats)),
		byName: make(map[string]int, len(cats)),
	}

	for i, c := range cats {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: category %d has a blank name", internalerr.ErrLibraryLoad, i)
		}
		if _, dup := lib.byName[name]; dup {
			return nil, fmt.Errorf("%w: category %q: %w", internalerr.ErrLibraryLoad, name, internalerr.ErrDuplicate)
		}
		if len(c.ExactTerms) == 0 {
			return nil, fmt.Errorf("%w: category %q has no exact terms", internalerr.ErrLibraryLoad, name)
		}
		if c.ID == "" {
			c.ID = strings.ToLower(name)
		}
		c.Name = name
		lib.byName[name] = i
		lib.cats[i] = c
	}

	lib.compile()
	return lib, nil
}

// compile builds the multi-pattern automaton over all exact terms.
// Terms shared by several categories become a single pattern owned by
// each of them.
func (l *Library) compile() {
	builder := ahocorasick.NewTrieBuilder()
	patIndex := make(map[string]int)

	for ci, c := range l.cats {
		for _, term := range c.ExactTerms {
			pattern := strings.ToLower(term)
			pi, seen := patIndex[pattern]
			if !seen {
				pi = len(l.patterns)
				patIndex[pattern] = pi
				builder.AddString(pattern)
				l.patterns = append(l.patterns, pattern)
				l.patCats = append(l.patCats, nil)
			}
			l.patCats[pi] = append(l.patCats[pi], ci)
		}
	}
	l.trie = builder.Build()
}

// LookupExact scans the automaton once over the lowercased input and
// returns every exact-term occurrence, ordered by match position.
func (l *Library) LookupExact(text string) []Hit {
	if text == "" {
		return nil
	}

	matches := l.trie.MatchString(strings.ToLower(text))
	if len(matches) == 0 {
		return nil
	}

	hits := make([]Hit, 0, len(matches))
	for _, m := range matches {
		pi := int(m.Pattern())
		if pi < 0 || pi >= len(l.patterns) {
			continue
		}
		for _, ci := range l.patCats[pi] {
			hits = append(hits, Hit{
				Category: l.cats[ci].Name,
				Term:     l.patterns[pi],
				Pos:      int(m.Pos()),
			})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Pos < hits[j].Pos })
	return hits
}

// Categories returns the category list in load order.
func (l *Library) Categories() []Category {
	out := make([]Category, len(l.cats))
	copy(out, l.cats)
	return out
}

// Get returns a category by canonical name.
func (l *Library) Get(name string) (Category, bool) {
	if i, ok := l.byName[name]; ok {
		return l.cats[i], true
	}
	return Category{}, false
}

// Len returns the number of categories.
func (l *Library) Len() int { return len(l.cats) }

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
