package cache

import (
	"errors"
	"fmt"
	"testing"

	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/engine"
	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/internalerr"
	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/keywords"
)

func entry(cat string) Entry {
	return Entry{
		Keywords: []keywords.Keyword{{Term: "财务", Score: 3.0, Count: 1}},
		Result:   engine.Result{Category: cat, Confidence: 0.95, Tier: engine.TierExact},
	}
}

func TestPutGet(t *testing.T) {
	c, err := New(10)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	c.Put("财务报表分析", entry("财务"))

	got, ok := c.Get("财务报表分析")
	if !ok {
		t.Fatal("expected hit")
	}
	if got.Result.Category != "财务" {
		t.Errorf("category = %q", got.Result.Category)
	}
}

func TestNormalizedKeySharing(t *testing.T) {
	c, _ := New(10)
	c.Put("财务报表  分析", entry("财务"))

	if _, ok := c.Get("  财务报表 分析 "); !ok {
		t.Error("whitespace variants should share an entry")
	}
	if _, ok := c.Get("Market Report"); ok {
		t.Error("unexpected hit")
	}

	c.Put("Market Report", entry("市场"))
	if _, ok := c.Get("market  report"); !ok {
		t.Error("case variants should share an entry")
	}
}

func TestLRUEviction(t *testing.T) {
	c, _ := New(2)

	c.Put("a 1", entry("A"))
	c.Put("b 2", entry("B"))

	// Touch "a 1" so "b 2" becomes least recently used.
	if _, ok := c.Get("a 1"); !ok {
		t.Fatal("expected a 1")
	}

	c.Put("c 3", entry("C"))

	if _, ok := c.Get("b 2"); ok {
		t.Error("b 2 should have been evicted")
	}
	if _, ok := c.Get("a 1"); !ok {
		t.Error("a 1 should have survived")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestCapacityBound(t *testing.T) {
	c, _ := New(5)
	for i := 0; i < 100; i++ {
		c.Put(fmt.Sprintf("doc %d", i), entry("X"))
	}
	if c.Len() != 5 {
		t.Errorf("Len = %d, want 5", c.Len())
	}
}

func TestInvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		if _, err := New(size); !errors.Is(err, internalerr.ErrInvalidConfig) {
			t.Errorf("New(%d): expected ErrInvalidConfig, got %v", size, err)
		}
	}
}

func TestPurge(t *testing.T) {
	c, _ := New(10)
	c.Put("a 1", entry("A"))
	c.Purge()
	if c.Len() != 0 {
		t.Errorf("Len after purge = %d", c.Len())
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct{ in, want string }{
		{"  财务  报表 ", "财务 报表"},
		{"Market\tReport", "market report"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeKey(tt.in); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
