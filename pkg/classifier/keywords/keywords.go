// Package keywords ranks segmented tokens and returns the most
// representative few per document.
//
// Scoring per candidate token:
//
//	score = frequencyWeight(count) + positionWeight(firstIndex) + domainBoost
//
// Position weight strictly decreases with the first-occurrence index, so
// front-loaded titles dominate. Stop terms (common words and geographic
// names), single-rune tokens and pure-numeric tokens are excluded outright
// rather than down-weighted.
package keywords

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/stopterm"
)

const (
	// Boost added to tokens found in the inferred domain vocabulary.
	domainBoost = 1.0
	// Base of the position weight; a token at index 0 gets the full base.
	positionBase = 2.0
)

// Keyword is a ranked extraction result.
type Keyword struct {
	Term       string
	Score      float64
	Count      int
	FirstIndex int
}

// Extractor ranks tokens using a stop-term filter and optional
// domain vocabularies.
type Extractor struct {
	filter  *stopterm.Filter
	domains map[string][]string
}

// NewExtractor creates an extractor with the built-in domain vocabularies.
func NewExtractor(filter *stopterm.Filter) *Extractor {
	return &Extractor{
		filter:  filter,
		domains: DefaultDomainVocab(),
	}
}

// SetDomainVocab replaces the domain vocabularies.
func (e *Extractor) SetDomainVocab(domains map[string][]string) {
	e.domains = domains
}

// Extract returns the top-N surviving tokens by descending composite
// score; equal scores break by ascending first-occurrence index.
// topN <= 0 returns an empty result.
func (e *Extractor) Extract(tokens []string, topN int) []Keyword {
	if topN <= 0 || len(tokens) == 0 {
		return nil
	}

	type stat struct {
		count int
		first int
	}
	stats := make(map[string]*stat)
	var order []string

	for i, tok := range tokens {
		if !e.isCandidate(tok) {
			continue
		}
		key := strings.ToLower(tok)
		if s, ok := stats[key]; ok {
			s.count++
			continue
		}
		stats[key] = &stat{count: 1, first: i}
		order = append(order, key)
	}

	if len(order) == 0 {
		return nil
	}

	domainVocab := e.domainVocabFor(e.InferDomain(tokens))

	out := make([]Keyword, 0, len(order))
	total := float64(len(tokens))
	for _, term := range order {
		s := stats[term]
		score := float64(s.count) + positionBase - float64(s.first)/total
		if _, ok := domainVocab[term]; ok {
			score += domainBoost
		}
		out = append(out, Keyword{
			Term:       term,
			Score:      score,
			Count:      s.count,
			FirstIndex: s.first,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].FirstIndex < out[j].FirstIndex
	})

	if len(out) > topN {
		out = out[:topN]
	}
	return out
}

// Terms returns just the ordered keyword strings.
func Terms(kws []Keyword) []string {
	out := make([]string, len(kws))
	for i, kw := range kws {
		out[i] = kw.Term
	}
	return out
}

// isCandidate applies the outright exclusions.
func (e *Extractor) isCandidate(tok string) bool {
	if utf8.RuneCountInString(tok) <= 1 {
		return false
	}
	if isNumericOnly(tok) {
		return false
	}
	if e.filter != nil && e.filter.IsStopTerm(tok) {
		return false
	}
	return true
}

// InferDomain picks the domain whose vocabulary overlaps the token stream
// the most. Returns "" when nothing overlaps.
func (e *Extractor) InferDomain(tokens []string) string {
	if len(e.domains) == 0 {
		return ""
	}
	text := strings.ToLower(strings.Join(tokens, ""))

	best := ""
	bestScore := 0
	names := make([]string, 0, len(e.domains))
	for name := range e.domains {
		names = append(names, name)
	}
	sort.Strings(names) // deterministic on ties

	for _, name := range names {
		score := 0
		for _, kw := range e.domains[name] {
			if strings.Contains(text, strings.ToLower(kw)) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = name
		}
	}
	return best
}

func (e *Extractor) domainVocabFor(domain string) map[string]struct{} {
	vocab := make(map[string]struct{})
	if domain == "" {
		return vocab
	}
	for _, kw := range e.domains[domain] {
		vocab[strings.ToLower(kw)] = struct{}{}
	}
	return vocab
}

func isNumericOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// DefaultDomainVocab returns the built-in domain vocabularies used for
// domain inference and keyword boosting.
func DefaultDomainVocab() map[string][]string {
	return map[string][]string{
		"technology": {
			"人工智能", "机器学习", "深度学习", "神经网络", "算法", "数据挖掘",
			"大数据", "云计算", "区块链", "物联网", "5G", "量子计算",
			"AI", "ML", "DL", "算法优化", "模型训练", "特征工程",
		},
		"business": {
			"市场营销", "财务管理", "人力资源", "供应链", "商业模式",
			"战略规划", "风险控制", "投资", "融资", "并购",
			"销售", "预算", "成本控制", "利润", "营收",
		},
		"research": {
			"实验", "研究", "开发", "创新", "专利", "技术", "方案",
			"可行性", "验证", "测试", "优化", "调研", "分析",
		},
	}
}
