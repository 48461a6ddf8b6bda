package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/internalerr"
)

func writeSubjects(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "subjects.yaml")
	content := `categories:
  - name: 财务
    terms:
      - 财务报表
    context:
      - 预算
  - name: 人工智能
    terms:
      - 人工智能
    aliases:
      - AI
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoaderSubjectsOnly(t *testing.T) {
	tmpDir := t.TempDir()

	loader := Loader{SubjectsPath: writeSubjects(t, tmpDir)}

	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Subjects-only loader should succeed: %v", err)
	}

	if comp.Library == nil || comp.Library.Len() != 2 {
		t.Errorf("Library should hold 2 categories, got %+v", comp.Library)
	}
	if comp.Filter == nil {
		t.Fatal("Should have filter (defaults)")
	}
	// Built-in stop words apply when no stoplist path is given.
	if !comp.Filter.IsStopWord("可以") {
		t.Error("Default stop words should include 可以")
	}
	if comp.Config != Default() {
		t.Errorf("Config should be Default(), got %+v", comp.Config)
	}
}

func TestLoaderMissingSubjectsPath(t *testing.T) {
	loader := Loader{}
	if _, err := loader.Load(); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoaderNonExistentSubjects(t *testing.T) {
	loader := Loader{SubjectsPath: "/nonexistent/subjects.yaml"}
	if _, err := loader.Load(); err == nil {
		t.Error("Should error on nonexistent subjects")
	}
}

func TestLoaderNonExistentStoplist(t *testing.T) {
	tmpDir := t.TempDir()
	loader := Loader{
		SubjectsPath: writeSubjects(t, tmpDir),
		StoplistPath: "/nonexistent/stoplist.yaml",
	}
	if _, err := loader.Load(); err == nil {
		t.Error("Should error on nonexistent stoplist")
	}
}

func TestLoaderCustomStoplistReplacesDefaults(t *testing.T) {
	tmpDir := t.TempDir()

	slPath := filepath.Join(tmpDir, "stoplist.yaml")
	if err := os.WriteFile(slPath, []byte("terms:\n  - 备忘\n"), 0644); err != nil {
		t.Fatal(err)
	}

	loader := Loader{
		SubjectsPath: writeSubjects(t, tmpDir),
		StoplistPath: slPath,
	}

	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !comp.Filter.IsStopWord("备忘") {
		t.Error("Custom stop word 备忘 should apply")
	}
	if comp.Filter.IsStopWord("可以") {
		t.Error("Custom stoplist replaces defaults, 可以 should not apply")
	}
}

func TestLoaderCustomGeoNames(t *testing.T) {
	tmpDir := t.TempDir()

	geoPath := filepath.Join(tmpDir, "geo.yaml")
	if err := os.WriteFile(geoPath, []byte("terms:\n  - 某某新区\n"), 0644); err != nil {
		t.Fatal(err)
	}

	loader := Loader{
		SubjectsPath: writeSubjects(t, tmpDir),
		GeoPath:      geoPath,
	}

	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !comp.Filter.IsGeoName("某某新区") {
		t.Error("Custom geo name should apply")
	}
	// Suffix heuristics work regardless of the configured list.
	if !comp.Filter.IsGeoName("昆山市") {
		t.Error("Geo suffix heuristic should still apply")
	}
}

func TestLoaderConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	cfgPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("keyword_top_n: 7\n"), 0644); err != nil {
		t.Fatal(err)
	}

	loader := Loader{
		SubjectsPath: writeSubjects(t, tmpDir),
		ConfigPath:   cfgPath,
	}

	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if comp.Config.KeywordTopN != 7 {
		t.Errorf("KeywordTopN = %d, want 7", comp.Config.KeywordTopN)
	}
	if comp.Config.MinConfidence != 0.80 {
		t.Errorf("MinConfidence = %f, want default 0.80", comp.Config.MinConfidence)
	}
}

func TestLoaderMalformedSubjects(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "bad.yaml")
	if err := os.WriteFile(path, []byte("categories: {unclosed\n"), 0644); err != nil {
		t.Fatal(err)
	}

	loader := Loader{SubjectsPath: path}
	if _, err := loader.Load(); err == nil {
		t.Error("Should error on malformed YAML")
	}
}

func TestLoaderDuplicateCategory(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "dup.yaml")
	content := `categories:
  - name: 财务
    terms: [财务报表]
  - name: 财务
    terms: [财务分析]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	loader := Loader{SubjectsPath: path}
	if _, err := loader.Load(); !errors.Is(err, internalerr.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}
