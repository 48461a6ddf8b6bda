package segment

import (
	"strings"

	"github.com/go-ego/gse"
)

// GseSegmenter segments Chinese text using the gse dictionary segmenter.
type GseSegmenter struct {
	seg gse.Segmenter
}

// NewGse creates a gse-backed segmenter. With no arguments the embedded
// default dictionary is loaded; dictionary file paths may be passed to
// load domain-specific vocabularies on top.
func NewGse(dictFiles ...string) (*GseSegmenter, error) {
	seg, err := gse.New(dictFiles...)
	if err != nil {
		return nil, err
	}
	return &GseSegmenter{seg: seg}, nil
}

// Segment implements Segmenter using HMM-assisted dictionary cutting.
// Whitespace-only fragments are dropped.
func (g *GseSegmenter) Segment(text string) []string {
	cut := g.seg.Cut(text, true)
	tokens := make([]string, 0, len(cut))
	for _, tok := range cut {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
