package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/crypdick/obsidian-tools/internal/session"
	"github.com/crypdick/obsidian-tools/internal/testutil"
	"github.com/crypdick/obsidian-tools/internal/vault"
)

func planFile(t *testing.T, root, relPath string) vault.File {
	t.Helper()
	path := filepath.Join(root, relPath)
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", relPath, err)
	}
	return vault.File{
		Path:    path,
		RelPath: relPath,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
}

func TestExecuteChanges(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithFile("notes/modify.md", "# Old\n").
		WithFile("notes/delete.md", "# Gone\n").
		WithFile("notes/keep (1).md", "# Keeper\n").
		Build()

	plan := &Plan{
		Op:      "dedup",
		Dir:     v.Path,
		Root:    v.Path,
		Started: time.Now(),
		Scanned: 3,
	}
	plan.Changes = []Change{
		{
			File:    planFile(t, v.Path, "notes/modify.md"),
			Action:  ActionModify,
			Detail:  "rewrite",
			Content: []byte("# New\n"),
		},
		{
			File:   planFile(t, v.Path, "notes/delete.md"),
			Action: ActionDelete,
			Detail: "duplicate of notes/modify.md",
		},
		{
			File:     planFile(t, v.Path, "notes/keep (1).md"),
			Action:   ActionRename,
			RenameTo: filepath.Join(v.Path, "notes", "keep.md"),
			Detail:   "rename to keep.md",
		},
	}

	s, err := session.New(v.Path, plan.Op, false)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	defer s.Close()

	results := executeChanges(plan, s)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	byPath := make(map[string]resultItem)
	for _, r := range results {
		byPath[r.Path] = r
	}

	if got := byPath["notes/modify.md"].Status; got != StatusModified {
		t.Errorf("modify status = %q, want %q", got, StatusModified)
	}
	v.AssertFileEquals("notes/modify.md", "# New\n")

	if got := byPath["notes/delete.md"].Status; got != StatusDeleted {
		t.Errorf("delete status = %q, want %q", got, StatusDeleted)
	}
	v.AssertFileNotExists("notes/delete.md")

	if got := byPath["notes/keep (1).md"].Status; got != StatusRenamed {
		t.Errorf("rename status = %q, want %q", got, StatusRenamed)
	}
	v.AssertFileNotExists("notes/keep (1).md")
	v.AssertFileEquals("notes/keep.md", "# Keeper\n")

	// Every change gets a backup of the original bytes before it runs.
	for _, rel := range []string{"notes/modify.md", "notes/delete.md", "notes/keep (1).md"} {
		backup := byPath[rel].Backup
		if backup == "" {
			t.Errorf("no backup recorded for %s", rel)
			continue
		}
		if _, err := os.Stat(backup); err != nil {
			t.Errorf("backup missing for %s: %v", rel, err)
		}
	}
	data, err := os.ReadFile(byPath["notes/modify.md"].Backup)
	if err != nil {
		t.Fatalf("failed to read backup: %v", err)
	}
	if string(data) != "# Old\n" {
		t.Errorf("backup content = %q, want original bytes", data)
	}
}

func TestExecuteChangesRenameDestAppeared(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithFile("note (1).md", "# Body\n").
		WithFile("note.md", "# Other\n").
		Build()

	plan := &Plan{Op: "dedup", Dir: v.Path, Root: v.Path, Started: time.Now()}
	plan.Changes = []Change{{
		File:     planFile(t, v.Path, "note (1).md"),
		Action:   ActionRename,
		RenameTo: filepath.Join(v.Path, "note.md"),
	}}

	s, err := session.New(v.Path, plan.Op, false)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	defer s.Close()

	results := executeChanges(plan, s)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Status != StatusSkipped {
		t.Errorf("status = %q, want %q", results[0].Status, StatusSkipped)
	}
	if results[0].Detail != "destination exists: note.md" {
		t.Errorf("detail = %q", results[0].Detail)
	}
	// Both files survive untouched.
	v.AssertFileEquals("note (1).md", "# Body\n")
	v.AssertFileEquals("note.md", "# Other\n")
}

func TestSummarize(t *testing.T) {
	plan := &Plan{Op: "strip", Dir: "/v", Scanned: 10}
	results := []resultItem{
		{Path: "a.md", Status: StatusModified},
		{Path: "b.md", Status: StatusModified},
		{Path: "c.md", Status: StatusDeleted},
		{Path: "d.md", Status: StatusRenamed},
		{Path: "e.md", Status: StatusSkipped},
		{Path: "f.md", Status: StatusError},
	}

	got := summarize(plan, "strip-20260101-120000-abcd1234", results)
	if got.Modified != 2 || got.Deleted != 1 || got.Renamed != 1 || got.Skipped != 1 || got.Errors != 1 {
		t.Errorf("summary counts = %+v", got)
	}
	if got.Scanned != 10 {
		t.Errorf("scanned = %d, want 10", got.Scanned)
	}
	if got.Session != "strip-20260101-120000-abcd1234" {
		t.Errorf("session = %q", got.Session)
	}
}

func TestPreviewOf(t *testing.T) {
	plan := &Plan{
		Op:      "limits",
		Dir:     "/v",
		Scanned: 5,
		Changes: []Change{
			{File: vault.File{RelPath: "a.md"}, Action: ActionModify, Title: "A", Detail: "add LIMIT 1000 to 1 query"},
		},
	}

	preview := previewOf(plan, true)
	if !preview.DryRun {
		t.Error("expected dry_run true")
	}
	if preview.Scanned != 5 {
		t.Errorf("scanned = %d, want 5", preview.Scanned)
	}
	if len(preview.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(preview.Items))
	}
	item := preview.Items[0]
	if item.Path != "a.md" || item.Action != ActionModify || item.Title != "A" {
		t.Errorf("unexpected item: %+v", item)
	}
}

func TestPlanWarnings(t *testing.T) {
	plan := &Plan{
		Skips: []Skip{
			{File: vault.File{RelPath: "a.md"}, Code: WarnSkippedConflict, Reason: "unresolved conflicts: status"},
		},
		Errors: []FileError{
			{Path: "b.md", Err: os.ErrPermission},
		},
	}

	warnings := planWarnings(plan)
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d", len(warnings))
	}
	if warnings[0].Code != WarnSkippedConflict || warnings[0].Path != "a.md" {
		t.Errorf("unexpected skip warning: %+v", warnings[0])
	}
	if warnings[1].Code != WarnFileError || warnings[1].Path != "b.md" {
		t.Errorf("unexpected error warning: %+v", warnings[1])
	}
}

func TestPlural(t *testing.T) {
	if got := plural(1, "file"); got != "file" {
		t.Errorf("plural(1) = %q", got)
	}
	if got := plural(2, "file"); got != "files" {
		t.Errorf("plural(2) = %q", got)
	}
	if got := plural(0, "conflict"); got != "conflicts" {
		t.Errorf("plural(0) = %q", got)
	}
}
