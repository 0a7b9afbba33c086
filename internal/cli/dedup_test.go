package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/crypdick/obsidian-tools/internal/testutil"
)

func TestPlanDedupDeletesDuplicates(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithFile("note.md", "# Note\n\nShared body.\n").
		WithFile("note (1).md", "# Note\n\nShared body.\n").
		WithFile("unique.md", "# Unique\n\nDifferent body.\n").
		Build()

	plan := planDedup(v.Path, v.Path)
	if len(plan.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", plan.Errors)
	}
	if len(plan.Changes) != 1 {
		t.Fatalf("expected 1 change, got %d: %+v", len(plan.Changes), plan.Changes)
	}

	c := plan.Changes[0]
	if c.Action != ActionDelete {
		t.Errorf("action = %q, want %q", c.Action, ActionDelete)
	}
	if c.File.RelPath != "note (1).md" {
		t.Errorf("delete target = %q, want the suffixed copy", c.File.RelPath)
	}
	if c.Detail != "duplicate of note.md" {
		t.Errorf("detail = %q", c.Detail)
	}
	if c.Title != "Note" {
		t.Errorf("title = %q, want Note", c.Title)
	}
}

func TestPlanDedupIgnoresFrontMatterDifferences(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithFile("a.md", "---\ncreated: 2024-01-01\n---\n# Card\n\nQ: What?\n").
		WithFile("a (1).md", "---\ncreated: 2024-06-15\ntags: [sync]\n---\n# Card\n\nQ: What?\n").
		Build()

	plan := planDedup(v.Path, v.Path)
	if len(plan.Changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(plan.Changes))
	}
	if plan.Changes[0].File.RelPath != "a (1).md" {
		t.Errorf("delete target = %q", plan.Changes[0].File.RelPath)
	}
}

func TestPlanDedupRenamesSuffixedKeeper(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithFile("card (1).md", "# Card\n\nBody.\n").
		WithFile("card (2).md", "# Card\n\nBody.\n").
		Build()

	plan := planDedup(v.Path, v.Path)
	if len(plan.Changes) != 2 {
		t.Fatalf("expected delete + rename, got %d: %+v", len(plan.Changes), plan.Changes)
	}

	var deleted, renamed *Change
	for i := range plan.Changes {
		switch plan.Changes[i].Action {
		case ActionDelete:
			deleted = &plan.Changes[i]
		case ActionRename:
			renamed = &plan.Changes[i]
		}
	}
	if deleted == nil || renamed == nil {
		t.Fatalf("missing actions in %+v", plan.Changes)
	}
	if deleted.File.RelPath != "card (2).md" {
		t.Errorf("delete target = %q, want card (2).md", deleted.File.RelPath)
	}
	if renamed.File.RelPath != "card (1).md" {
		t.Errorf("rename source = %q, want card (1).md", renamed.File.RelPath)
	}
	if filepath.Base(renamed.RenameTo) != "card.md" {
		t.Errorf("rename dest = %q, want card.md", renamed.RenameTo)
	}
	if renamed.Detail != "rename to card.md" {
		t.Errorf("detail = %q", renamed.Detail)
	}
}

func TestPlanDedupKeepsSuffixWhenDestTaken(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithFile("card.md", "# Different\n\nThis one stays.\n").
		WithFile("card (1).md", "# Card\n\nBody.\n").
		WithFile("card (2).md", "# Card\n\nBody.\n").
		Build()

	plan := planDedup(v.Path, v.Path)

	for _, c := range plan.Changes {
		if c.Action == ActionRename {
			t.Fatalf("rename planned although card.md exists: %+v", c)
		}
	}
	if len(plan.Skips) != 1 {
		t.Fatalf("expected 1 skip, got %d", len(plan.Skips))
	}
	skip := plan.Skips[0]
	if skip.Code != WarnRenameDestExists {
		t.Errorf("code = %q, want %q", skip.Code, WarnRenameDestExists)
	}
	if skip.File.RelPath != "card (1).md" {
		t.Errorf("skip path = %q", skip.File.RelPath)
	}
	if !strings.Contains(skip.Reason, "card.md exists") {
		t.Errorf("reason = %q", skip.Reason)
	}
}

func TestPlanDedupNoDuplicates(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithFile("a.md", "# A\n").
		WithFile("b.md", "# B\n").
		Build()

	plan := planDedup(v.Path, v.Path)
	if len(plan.Changes) != 0 || len(plan.Skips) != 0 || len(plan.Errors) != 0 {
		t.Errorf("expected empty plan, got %+v", plan)
	}
	if plan.Scanned != 2 {
		t.Errorf("scanned = %d, want 2", plan.Scanned)
	}
}

func TestPlanDedupCreatesHashCache(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithFile("a.md", "# A\n").
		WithFile("a (1).md", "# A\n").
		Build()

	first := planDedup(v.Path, v.Path)
	v.AssertFileExists(filepath.Join(".obsidian-tools", "cache.db"))

	// A second scan reads hashes from the cache and plans the same work.
	second := planDedup(v.Path, v.Path)
	if len(second.Changes) != len(first.Changes) {
		t.Errorf("cached run planned %d changes, first run %d", len(second.Changes), len(first.Changes))
	}
}

func TestPlanDedupNoCacheFlag(t *testing.T) {
	dedupNoCache = true
	defer func() { dedupNoCache = false }()

	v := testutil.NewTestVault(t).
		WithFile("a.md", "# A\n").
		WithFile("a (1).md", "# A\n").
		Build()

	plan := planDedup(v.Path, v.Path)
	if len(plan.Changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(plan.Changes))
	}
	v.AssertFileNotExists(filepath.Join(".obsidian-tools", "cache.db"))
}
