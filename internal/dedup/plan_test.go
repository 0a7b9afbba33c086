package dedup

import (
	"path/filepath"
	"testing"

	"github.com/crypdick/obsidian-tools/internal/vault"
)

func TestNumericSuffix(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"note.md", 0},
		{"note (1).md", 1},
		{"note (23).md", 23},
		{"note (1).MD", 1},
		{"note (x).md", 0},
		{"note(1).md", 0},
		{"deep name (2) (3).md", 3},
		{"no-extension", 0},
	}
	for _, tt := range tests {
		if got := NumericSuffix(tt.name); got != tt.want {
			t.Errorf("NumericSuffix(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestStripSuffix(t *testing.T) {
	tests := []struct {
		name     string
		want     string
		stripped bool
	}{
		{"note (1).md", "note.md", true},
		{"note (23).md", "note.md", true},
		{"note.md", "note.md", false},
		{"note (x).md", "note (x).md", false},
	}
	for _, tt := range tests {
		got, ok := StripSuffix(tt.name)
		if got != tt.want || ok != tt.stripped {
			t.Errorf("StripSuffix(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.stripped)
		}
	}
}

func hashedFile(root, rel, hash string) Hashed {
	return Hashed{
		File: vault.File{Path: filepath.Join(root, rel), RelPath: rel},
		Hash: hash,
	}
}

func TestPlanKeepsLowestSuffix(t *testing.T) {
	root := "/vault"
	files := []Hashed{
		hashedFile(root, "a.md", "h1"),
		hashedFile(root, "a (1).md", "h1"),
		hashedFile(root, "a (2).md", "h1"),
	}
	groups := Plan(files)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	g := groups[0]
	if g.Keep.RelPath != "a.md" {
		t.Errorf("keep = %q, want a.md", g.Keep.RelPath)
	}
	if len(g.Delete) != 2 {
		t.Fatalf("expected 2 deletions, got %d", len(g.Delete))
	}
	if g.RenameTo != "" {
		t.Errorf("unsuffixed keeper should not be renamed, got %q", g.RenameTo)
	}
}

func TestPlanRenamesFullySuffixedGroup(t *testing.T) {
	root := "/vault"
	files := []Hashed{
		hashedFile(root, "d (1).md", "h1"),
		hashedFile(root, "d (2).md", "h1"),
	}
	groups := Plan(files)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	g := groups[0]
	if g.Keep.RelPath != "d (1).md" {
		t.Errorf("keep = %q, want d (1).md", g.Keep.RelPath)
	}
	if g.RenameTo != filepath.Join(root, "d.md") {
		t.Errorf("rename to = %q, want %q", g.RenameTo, filepath.Join(root, "d.md"))
	}
	if len(g.Delete) != 1 || g.Delete[0].RelPath != "d (2).md" {
		t.Errorf("delete = %v", g.Delete)
	}
}

func TestPlanCrossNameDuplicates(t *testing.T) {
	root := "/vault"
	files := []Hashed{
		hashedFile(root, "b.md", "h1"),
		hashedFile(root, "c.md", "h1"),
	}
	groups := Plan(files)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].Keep.RelPath != "b.md" {
		t.Errorf("keep = %q, want first-scanned b.md", groups[0].Keep.RelPath)
	}
}

func TestPlanUniqueContentNoGroups(t *testing.T) {
	root := "/vault"
	files := []Hashed{
		hashedFile(root, "a.md", "h1"),
		hashedFile(root, "b.md", "h2"),
		hashedFile(root, "c.md", "h3"),
	}
	if groups := Plan(files); len(groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(groups))
	}
}

func TestPlanDeterministicGroupOrder(t *testing.T) {
	root := "/vault"
	files := []Hashed{
		hashedFile(root, "z.md", "h1"),
		hashedFile(root, "z (1).md", "h1"),
		hashedFile(root, "a.md", "h2"),
		hashedFile(root, "a (1).md", "h2"),
	}
	groups := Plan(files)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Keep.RelPath != "a.md" || groups[1].Keep.RelPath != "z.md" {
		t.Errorf("groups out of order: %q, %q", groups[0].Keep.RelPath, groups[1].Keep.RelPath)
	}
}

func TestPlanSubdirectoryRename(t *testing.T) {
	root := "/vault"
	files := []Hashed{
		hashedFile(root, "sub/n (1).md", "h1"),
		hashedFile(root, "sub/n (3).md", "h1"),
	}
	groups := Plan(files)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	want := filepath.Join(root, "sub", "n.md")
	if groups[0].RenameTo != want {
		t.Errorf("rename to = %q, want %q", groups[0].RenameTo, want)
	}
}
