package frontmatter

import (
	"strings"
	"testing"
)

func renderDocument(t *testing.T, content string) string {
	t.Helper()
	res, err := MergeDocument(content)
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	out, err := res.Render()
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return out
}

func TestRenderMergedBlocks(t *testing.T) {
	content := `---
title: My Note
created: 2024-01-01
tags:
  - a
  - b
---
---
created: 2023-05-05
tags:
  - b
  - c
status: draft
---

Body text.
`
	want := `---
title: My Note
created: 2023-05-05
tags:
  - a
  - b
  - c
status: draft
---

Body text.
`
	if got := renderDocument(t, content); got != want {
		t.Errorf("rendered document mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderSingleBlockRoundTrips(t *testing.T) {
	content := `---
title: My Note
tags:
  - a
  - b
---

# Heading
`
	if got := renderDocument(t, content); got != content {
		t.Errorf("single block should round-trip unchanged\ngot:\n%s", got)
	}
}

func TestRenderPreservesQuotingStyle(t *testing.T) {
	content := "---\nsummary: \"All systems: go\"\n---\n---\nextra: 1\n---\nbody\n"
	got := renderDocument(t, content)
	if !strings.Contains(got, `summary: "All systems: go"`) {
		t.Errorf("double-quoted scalar lost its quoting:\n%s", got)
	}
}

func TestRenderPreservesFlowLists(t *testing.T) {
	content := "---\ntags: [a, b]\n---\n---\ntags:\n  - b\n  - c\n---\nbody\n"
	got := renderDocument(t, content)
	if !strings.Contains(got, "tags: [a, b, c]") {
		t.Errorf("union of a flow list should stay flow:\n%s", got)
	}
}

func TestRenderEmptyFrontMatter(t *testing.T) {
	out, err := Render(&Merged{})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if out != "---\n---\n" {
		t.Errorf("empty front matter = %q, want bare delimiters", out)
	}
}

func TestRenderNoBlocksLeavesDocumentAlone(t *testing.T) {
	content := "# No front matter here\n\njust text\n"
	if got := renderDocument(t, content); got != content {
		t.Errorf("document without front matter must come back unchanged, got:\n%s", got)
	}
}

func TestRenderRefusesUnresolvedConflicts(t *testing.T) {
	res, err := MergeDocument("---\nstatus: a\n---\n---\nstatus: b\n---\n")
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if _, err := res.Render(); err == nil {
		t.Fatal("render must refuse while conflicts remain")
	}
}

func TestRenderEmptyBody(t *testing.T) {
	content := "---\na: 1\n---\n---\nb: 2\n---\n"
	want := "---\na: 1\nb: 2\n---\n"
	if got := renderDocument(t, content); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCompose(t *testing.T) {
	front := "---\na: 1\n---\n"
	if got := Compose(front, ""); got != front {
		t.Errorf("compose with empty body = %q", got)
	}
	if got := Compose(front, "body\n"); got != "---\na: 1\n---\n\nbody\n" {
		t.Errorf("compose = %q", got)
	}
}

func TestRenderIdempotent(t *testing.T) {
	docs := []string{
		"---\ntitle: x\ncreated: 2024-01-01\n---\n---\ncreated: 2023-05-05\ntags: [a]\n---\n\nBody.\n",
		"---\ntags:\n  - a\n---\n---\ntags:\n  - b\n---\n",
		"---\na: 1\n---\nplain body\n",
		"no front matter at all\n",
		"---\na: 1\n---\n---\nTODO:\n---\nrest\n",
	}
	for _, doc := range docs {
		first := renderDocument(t, doc)
		second := renderDocument(t, first)
		if first != second {
			t.Errorf("merge is not idempotent for %q\nfirst:\n%s\nsecond:\n%s", doc, first, second)
		}
	}
}
