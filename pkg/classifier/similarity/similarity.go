// Package similarity scores how close two strings are on a [0,1] scale.
//
// The score is a weighted blend of two views of the same pair:
//
//   - edit view: 1 - levenshtein(a,b)/max(len(a),len(b))
//   - sequence view: 2*LCS(a,b)/(len(a)+len(b))
//
// Both views operate on runes, so multi-byte CJK text is compared
// character-by-character rather than byte-by-byte. The blend is symmetric,
// deterministic, returns 1.0 iff the inputs are identical and 0.0 when
// exactly one input is empty.
package similarity

// Weights controls the blend between the edit-distance view and the
// LCS-ratio view. The two weights should sum to 1.
type Weights struct {
	Edit     float64
	Sequence float64
}

// DefaultWeights returns the standard blend: edit distance dominates,
// the sequence view softens transposition-heavy pairs.
func DefaultWeights() Weights {
	return Weights{Edit: 0.7, Sequence: 0.3}
}

// Score computes the blended similarity with DefaultWeights.
func Score(a, b string) float64 {
	return ScoreWeighted(a, b, DefaultWeights())
}

// ScoreWeighted computes the blended similarity with explicit weights.
func ScoreWeighted(a, b string, w Weights) float64 {
	if a == b {
		return 1.0
	}
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0.0
	}

	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	editScore := 1.0 - float64(levenshtein(ra, rb))/float64(maxLen)

	lcs := lcsLength(ra, rb)
	seqScore := 2.0 * float64(lcs) / float64(len(ra)+len(rb))

	score := w.Edit*editScore + w.Sequence*seqScore
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// levenshtein computes the edit distance between two rune slices using
// two rolling rows, O(min(m,n)) space.
func levenshtein(r1, r2 []rune) int {
	if len(r1) > len(r2) {
		r1, r2 = r2, r1
	}
	len1 := len(r1)
	len2 := len(r2)

	if len1 == 0 {
		return len2
	}

	prev := make([]int, len1+1)
	curr := make([]int, len1+1)

	for i := 0; i <= len1; i++ {
		prev[i] = i
	}

	for j := 1; j <= len2; j++ {
		curr[0] = j
		for i := 1; i <= len1; i++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[i] = min(prev[i]+1, min(curr[i-1]+1, prev[i-1]+cost))
		}
		prev, curr = curr, prev
	}

	return prev[len1]
}

// lcsLength computes the longest common subsequence length between two
// rune slices, again with two rolling rows.
func lcsLength(r1, r2 []rune) int {
	if len(r1) > len(r2) {
		r1, r2 = r2, r1
	}
	len1 := len(r1)
	len2 := len(r2)

	if len1 == 0 {
		return 0
	}

	prev := make([]int, len1+1)
	curr := make([]int, len1+1)

	for j := 1; j <= len2; j++ {
		for i := 1; i <= len1; i++ {
			if r1[i-1] == r2[j-1] {
				curr[i] = prev[i-1] + 1
			} else {
				curr[i] = max(prev[i], curr[i-1])
			}
		}
		prev, curr = curr, prev
		for i := range curr {
			curr[i] = 0
		}
	}

	return prev[len1]
}
