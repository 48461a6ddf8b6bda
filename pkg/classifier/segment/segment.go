// Package segment defines the word-segmentation boundary of the classifier.
//
// Classification and keyword extraction only require an ordered token
// sequence; how the tokens are produced is a backend concern. Two backends
// are provided: a dictionary-driven Chinese segmenter (gse) for production
// use, and a rule-based segmenter that needs no dictionary files.
package segment

// Segmenter produces an ordered sequence of tokens from raw text.
// Implementations must be safe for concurrent use.
type Segmenter interface {
	Segment(text string) []string
}

// Func adapts a plain function to the Segmenter interface.
type Func func(text string) []string

// Segment implements Segmenter.
func (f Func) Segment(text string) []string { return f(text) }
