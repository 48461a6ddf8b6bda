package segment

import (
	"reflect"
	"testing"
)

func TestSimpleSegmenterHanPairs(t *testing.T) {
	s := NewSimple()

	got := s.Segment("财务报表分析")
	want := []string{"财务", "报表", "分析"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Segment = %v, want %v", got, want)
	}
}

func TestSimpleSegmenterOddTail(t *testing.T) {
	s := NewSimple()

	got := s.Segment("机器学习库")
	want := []string{"机器", "学习", "库"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Segment = %v, want %v", got, want)
	}
}

func TestSimpleSegmenterMixedScript(t *testing.T) {
	s := NewSimple()

	got := s.Segment("AI项目总结")
	want := []string{"ai", "项目", "总结"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Segment = %v, want %v", got, want)
	}
}

func TestSimpleSegmenterSeparators(t *testing.T) {
	s := NewSimple()

	got := s.Segment("market-2024 报告, v2")
	want := []string{"market", "2024", "报告", "v2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Segment = %v, want %v", got, want)
	}
}

func TestSimpleSegmenterEmpty(t *testing.T) {
	s := NewSimple()

	if got := s.Segment(""); len(got) != 0 {
		t.Errorf("Segment(\"\") = %v, want empty", got)
	}
	if got := s.Segment("  ,. "); len(got) != 0 {
		t.Errorf("Segment(separators) = %v, want empty", got)
	}
}

func TestFuncAdapter(t *testing.T) {
	f := Func(func(text string) []string { return []string{text} })

	got := f.Segment("x")
	if len(got) != 1 || got[0] != "x" {
		t.Errorf("Func adapter returned %v", got)
	}
}
