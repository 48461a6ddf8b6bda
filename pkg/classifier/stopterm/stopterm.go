// Package stopterm excludes domain-irrelevant terms from keyword candidates.
//
// Two exclusion classes are combined: common Chinese stop words, and
// geographic names (province/city names plus administrative-division
// suffix patterns). Both are exclusion sets, not down-weights: a term in
// either set never surfaces as a keyword.
package stopterm

import (
	"regexp"
	"strings"
)

// Filter holds the combined stop-word and geographic-name sets.
type Filter struct {
	stops map[string]struct{}
	geo   map[string]struct{}
}

// Administrative-division suffixes and single-char province abbreviations.
var (
	geoSuffixPattern = regexp.MustCompile(`[省市县区镇乡村]$`)
	geoAbbrevPattern = regexp.MustCompile(`^[京津沪渝冀豫云辽黑湘皖鲁新苏浙赣鄂桂甘晋蒙陕吉闽贵粤青藏川宁琼][省市县区]$`)
)

// New creates a filter from explicit stop-word and geo-name lists.
func New(stopWords, geoNames []string) *Filter {
	f := &Filter{
		stops: make(map[string]struct{}, len(stopWords)),
		geo:   make(map[string]struct{}, len(geoNames)),
	}
	for _, w := range stopWords {
		w = strings.TrimSpace(strings.ToLower(w))
		if w != "" {
			f.stops[w] = struct{}{}
		}
	}
	for _, g := range geoNames {
		g = strings.TrimSpace(strings.ToLower(g))
		if g != "" {
			f.geo[g] = struct{}{}
		}
	}
	return f
}

// NewDefault creates a filter preloaded with the built-in lists.
func NewDefault() *Filter {
	return New(DefaultStopWords(), DefaultGeoNames())
}

// IsStopTerm reports whether the token belongs to either exclusion class.
func (f *Filter) IsStopTerm(token string) bool {
	token = strings.ToLower(token)
	if _, ok := f.stops[token]; ok {
		return true
	}
	return f.isGeoName(token)
}

// IsStopWord reports whether the token is a plain stop word.
func (f *Filter) IsStopWord(token string) bool {
	_, ok := f.stops[strings.ToLower(token)]
	return ok
}

// IsGeoName reports whether the token is a geographic name, either by
// direct lookup or by administrative-division suffix pattern.
func (f *Filter) IsGeoName(token string) bool {
	return f.isGeoName(strings.ToLower(token))
}

func (f *Filter) isGeoName(token string) bool {
	if _, ok := f.geo[token]; ok {
		return true
	}
	// Suffix patterns only apply to multi-rune tokens; the bare suffixes
	// themselves are in the direct set.
	runes := []rune(token)
	if len(runes) < 2 {
		return false
	}
	if geoSuffixPattern.MatchString(token) {
		return true
	}
	return geoAbbrevPattern.MatchString(token)
}

// AddStopWord adds a stop word to the filter.
func (f *Filter) AddStopWord(token string) {
	token = strings.TrimSpace(strings.ToLower(token))
	if token != "" {
		f.stops[token] = struct{}{}
	}
}

// AddGeoName adds a geographic name to the filter.
func (f *Filter) AddGeoName(name string) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name != "" {
		f.geo[name] = struct{}{}
	}
}

// StopWords returns all registered stop words.
func (f *Filter) StopWords() []string {
	out := make([]string, 0, len(f.stops))
	for w := range f.stops {
		out = append(out, w)
	}
	return out
}

// DefaultStopWords returns the built-in Chinese stop-word list.
func DefaultStopWords() []string {
	return []string{
		"的", "了", "在", "是", "我", "有", "和", "就", "不", "人", "都", "一",
		"一个", "上", "也", "很", "到", "说", "要", "去", "你", "会", "着",
		"没有", "看", "好", "自己", "这", "那", "里", "就是", "还是", "为了",
		"可以", "应该", "能够", "已经", "现在", "这个", "那个", "这些", "那些",
	}
}

// DefaultGeoNames returns the built-in geographic-name list: province-level
// divisions, major cities, and bare administrative-division suffixes.
func DefaultGeoNames() []string {
	return []string{
		// Province-level divisions
		"北京", "上海", "天津", "重庆", "河北", "山西", "辽宁", "吉林", "黑龙江",
		"江苏", "浙江", "安徽", "福建", "江西", "山东", "河南", "湖北", "湖南",
		"广东", "海南", "四川", "贵州", "云南", "陕西", "甘肃", "青海", "台湾",
		"内蒙古", "广西", "西藏", "宁夏", "新疆", "香港", "澳门",

		// Major cities
		"北京市", "上海市", "广州市", "深圳市", "杭州市", "南京市", "武汉市",
		"成都市", "西安市", "天津市", "重庆市", "苏州市", "青岛市", "长沙市",
		"大连市", "厦门市", "宁波市", "无锡市", "合肥市", "太原市", "沈阳市",

		// Bare suffixes
		"省", "市", "县", "区", "镇", "乡", "村",
	}
}
