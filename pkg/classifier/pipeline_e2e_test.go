package classifier

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/config"
	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/engine"
	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/store"
	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/store/memstore"
)

// TestEndToEnd demonstrates the complete workflow:
// 1. Configuration loading from YAML
// 2. Classifier construction
// 3. Per-document classification and keyword extraction
// 4. Cache reuse
// 5. Run persistence
func TestEndToEnd(t *testing.T) {
	ctx := context.Background()

	// === Phase 1: Load Configuration ===

	tmpDir := t.TempDir()
	subjectsPath := filepath.Join(tmpDir, "subjects.yaml")
	subjectsYAML := `categories:
  - name: 财务
    terms:
      - 财务报表
      - 财务分析
    context:
      - 预算
      - 成本
  - name: 人工智能
    terms:
      - 人工智能
      - 深度学习
    aliases:
      - AI
  - name: 研发
    terms:
      - 研发
    context:
      - 研究
      - 实验
      - 方案
`
	if err := os.WriteFile(subjectsPath, []byte(subjectsYAML), 0644); err != nil {
		t.Fatal(err)
	}

	loader := config.Loader{SubjectsPath: subjectsPath}
	components, err := loader.Load()
	if err != nil {
		t.Fatalf("load configs: %v", err)
	}
	t.Logf("✓ Loaded %d categories", components.Library.Len())

	// === Phase 2: Build Classifier ===

	c, err := NewFromComponents(components, nil)
	if err != nil {
		t.Fatalf("build classifier: %v", err)
	}

	// === Phase 3: Classify Documents ===

	docs := []struct {
		text     string
		category string
		tier     engine.Tier
	}{
		{"财务报表分析", "财务", engine.TierExact},
		{"公司财务分析与预算说明", "财务", engine.TierExact},
		{"AI项目总结", "人工智能", engine.TierFuzzy},
		{"深度学习在图像识别中的应用", "人工智能", engine.TierExact},
		{"今天天气不错", "", engine.TierNone},
	}

	rows := make([]store.Row, 0, len(docs))
	for i, doc := range docs {
		out := c.ClassifyAndExtract(doc.text)
		if out.Result.Category != doc.category {
			t.Errorf("Classify(%q) category = %q, want %q (result %+v)",
				doc.text, out.Result.Category, doc.category, out.Result)
		}
		if out.Result.Tier != doc.tier {
			t.Errorf("Classify(%q) tier = %v, want %v", doc.text, out.Result.Tier, doc.tier)
		}
		rows = append(rows, store.Row{
			DocIndex:   int64(i),
			Text:       doc.text,
			Category:   out.Result.Category,
			Confidence: out.Result.Confidence,
			Tier:       out.Result.Tier.String(),
			Keywords:   out.KeywordTerms(),
		})
	}
	t.Logf("✓ Classified %d documents", len(docs))

	// === Phase 4: Cache Reuse ===

	again := c.ClassifyAndExtract("财务报表分析")
	if !again.FromCache {
		t.Error("repeat classification should come from cache")
	}

	// === Phase 5: Persist Run ===

	st := memstore.New()
	defer st.Close()

	run := store.Run{
		ID:        store.NewRunID(),
		Source:    "e2e",
		StartedAt: time.Now(),
		Total:     int64(len(docs)),
		Matched:   4,
	}
	if err := st.SaveRun(ctx, run); err != nil {
		t.Fatalf("save run: %v", err)
	}
	if err := st.AppendRows(ctx, run.ID, rows); err != nil {
		t.Fatalf("append rows: %v", err)
	}

	counts, err := st.TierCounts(ctx, run.ID)
	if err != nil {
		t.Fatalf("tier counts: %v", err)
	}
	if counts["exact"] != 3 || counts["fuzzy"] != 1 || counts["none"] != 1 {
		t.Errorf("unexpected tier distribution: %v", counts)
	}
	t.Logf("✓ Persisted run %s with tiers %v", run.ID, counts)
}
