package segment

import (
	"strings"
	"unicode"
)

// SimpleSegmenter is a rule-based fallback that needs no dictionary.
// Latin/digit runs become single lowercased tokens; Han runs are chunked
// into non-overlapping two-character tokens, which matches the dominant
// word length of modern Chinese well enough for scoring purposes.
// Everything else is treated as a separator.
type SimpleSegmenter struct{}

// NewSimple creates a rule-based segmenter.
func NewSimple() *SimpleSegmenter {
	return &SimpleSegmenter{}
}

// Segment implements Segmenter.
func (s *SimpleSegmenter) Segment(text string) []string {
	var tokens []string
	var latin strings.Builder
	var han []rune

	flushLatin := func() {
		if latin.Len() > 0 {
			tokens = append(tokens, latin.String())
			latin.Reset()
		}
	}
	flushHan := func() {
		for i := 0; i < len(han); i += 2 {
			end := i + 2
			if end > len(han) {
				end = len(han)
			}
			tokens = append(tokens, string(han[i:end]))
		}
		han = han[:0]
	}

	for _, r := range text {
		switch {
		case unicode.Is(unicode.Han, r):
			flushLatin()
			han = append(han, r)
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			flushHan()
			latin.WriteRune(unicode.ToLower(r))
		default:
			flushLatin()
			flushHan()
		}
	}
	flushLatin()
	flushHan()

	return tokens
}
