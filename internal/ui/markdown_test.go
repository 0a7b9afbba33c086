package ui

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown("# Heading\n\nSome body text.\n", 80)
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	if !strings.Contains(out, "Heading") {
		t.Errorf("heading text missing from output:\n%s", out)
	}
	if !strings.HasSuffix(out, "\n") || strings.HasSuffix(out, "\n\n") {
		t.Errorf("want exactly one trailing newline, got %q", out[len(out)-4:])
	}
}

func TestRenderMarkdownZeroWidthFallsBack(t *testing.T) {
	out, err := RenderMarkdown("hello", 0)
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	if strings.TrimSpace(out) == "" {
		t.Error("rendered output is empty")
	}
}

func TestMarkdownStyleShape(t *testing.T) {
	style := markdownStyle()

	if style.Heading.Bold == nil || !*style.Heading.Bold {
		t.Error("headings should render bold")
	}
	if style.Item.BlockPrefix != "• " {
		t.Errorf("list prefix = %q, want bullet", style.Item.BlockPrefix)
	}
	if style.H1.Prefix != "# " || style.H3.Prefix != "### " {
		t.Errorf("heading markers should survive rendering, got %q / %q", style.H1.Prefix, style.H3.Prefix)
	}
}
