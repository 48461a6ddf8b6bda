// Package cache memoizes per-document results behind a bounded LRU.
//
// Keys are case- and whitespace-normalized so near-duplicate rows
// ("财务报表 " vs "财务报表") share an entry. The cache is an optimization,
// never a correctness requirement: batch workers hold one instance each
// instead of contending on a shared lock.
package cache

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/engine"
	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/internalerr"
	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/keywords"
)

// Entry is the memoized value for one normalized input.
type Entry struct {
	Keywords []keywords.Keyword
	Result   engine.Result
}

// Cache is a bounded least-recently-used result store.
type Cache struct {
	lru *lru.Cache[string, Entry]
}

// New creates a cache holding at most size entries.
func New(size int) (*Cache, error) {
	if size <= 0 {
		return nil, fmt.Errorf("cache: %w: size %d", internalerr.ErrInvalidConfig, size)
	}
	inner, err := lru.New[string, Entry](size)
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	return &Cache{lru: inner}, nil
}

// NormalizeKey lowercases the text and collapses runs of whitespace.
func NormalizeKey(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// Get returns the entry for the normalized form of text and refreshes its
// recency.
func (c *Cache) Get(text string) (Entry, bool) {
	return c.lru.Get(NormalizeKey(text))
}

// Put stores the entry under the normalized form of text, evicting the
// least-recently-used entry when at capacity.
func (c *Cache) Put(text string, e Entry) {
	c.lru.Add(NormalizeKey(text), e)
}

// Len returns the number of live entries.
func (c *Cache) Len() int { return c.lru.Len() }

// Purge drops every entry.
func (c *Cache) Purge() { c.lru.Purge() }
