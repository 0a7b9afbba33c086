package ui

import (
	"strings"
	"testing"
)

func TestPlanTableRender(t *testing.T) {
	display := NewDisplayContextWithWidth(100)
	tbl := NewPlanTable(display, PlanLayout)

	tbl.AddRow(PlanRow{Num: 1, Cells: []string{"1", "notes/a.md", "My Note", "merge 2 blocks"}})
	tbl.AddRow(PlanRow{Num: 2, Cells: []string{"2", "notes/b.md", "Other", "skip: conflict on status"}})

	out := tbl.Render()
	if out == "" {
		t.Fatal("expected rendered table output")
	}
	for _, want := range []string{"notes/a.md", "merge 2 blocks", "skip: conflict on status"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected table to contain %q:\n%s", want, out)
		}
	}

	// Row separator between entries.
	if !strings.Contains(out, "─") {
		t.Errorf("expected row separators in table:\n%s", out)
	}
}

func TestPlanTableEmpty(t *testing.T) {
	tbl := NewPlanTable(NewDisplayContextWithWidth(80), PlanLayout)
	if out := tbl.Render(); out != "" {
		t.Errorf("expected empty output for empty table, got %q", out)
	}
}

func TestPlanTableContentWidth(t *testing.T) {
	tbl := NewPlanTable(NewDisplayContextWithWidth(120), PlanLayout)
	if w := tbl.ContentWidth("detail"); w < ColDetail.Min {
		t.Errorf("expected detail width >= %d, got %d", ColDetail.Min, w)
	}
	if w := tbl.ContentWidth("unknown"); w != 60 {
		t.Errorf("expected fallback width 60 for unknown column, got %d", w)
	}
}

func TestTruncateWithEllipsis(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"a long sentence that needs truncating", 20, "a long sentence..."},
		{"abcdef", 3, "abc"},
	}

	for _, tt := range tests {
		if got := TruncateWithEllipsis(tt.input, tt.maxLen); got != tt.expected {
			t.Errorf("TruncateWithEllipsis(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.expected)
		}
	}
}
