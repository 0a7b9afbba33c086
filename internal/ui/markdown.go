package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
)

// markdownMargin is the left margin for rendered guide pages.
const markdownMargin = 2

// RenderMarkdown renders a Markdown document for terminal display at the
// given width. Non-positive widths fall back to DefaultTermWidth.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(markdownStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	out, err := r.Render(content)
	if err != nil {
		return "", err
	}

	// glamour pads the document with blank lines; keep exactly one.
	return strings.TrimRight(out, "\n") + "\n", nil
}

func ptr[T any](v T) *T { return &v }

// markdownStyle keeps rendered pages close to their source text: heading
// markers stay visible, lists use plain bullets, and the configured accent
// color lands on headings only.
func markdownStyle() ansi.StyleConfig {
	muted := ptr("8")

	heading := ansi.StylePrimitive{BlockSuffix: "\n", Bold: ptr(true)}
	if color, ok := AccentColor(); ok {
		heading.Color = ptr(color)
	}

	cfg := ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{BlockPrefix: "\n", BlockSuffix: "\n"},
			Margin:         ptr(uint(markdownMargin)),
		},
		Heading: ansi.StyleBlock{StylePrimitive: heading},
		BlockQuote: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: muted},
			Indent:         ptr(uint(1)),
			IndentToken:    ptr("│ "),
		},
		List:           ansi.StyleList{LevelIndent: 2},
		Item:           ansi.StylePrimitive{BlockPrefix: "• "},
		Enumeration:    ansi.StylePrimitive{BlockPrefix: ". "},
		Task:           ansi.StyleTask{Ticked: "[x] ", Unticked: "[ ] "},
		Emph:           ansi.StylePrimitive{Italic: ptr(true)},
		Strong:         ansi.StylePrimitive{Bold: ptr(true)},
		Strikethrough:  ansi.StylePrimitive{CrossedOut: ptr(true)},
		HorizontalRule: ansi.StylePrimitive{Color: muted, Format: "\n--------\n"},
		Link:           ansi.StylePrimitive{Color: muted, Underline: ptr(true)},
		LinkText:       ansi.StylePrimitive{Color: muted, Bold: ptr(true)},
		Image:          ansi.StylePrimitive{Underline: ptr(true)},
		ImageText:      ansi.StylePrimitive{Color: muted, Format: "Image: {{.text}} ->"},
		Code: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Prefix: "`", Suffix: "`"},
		},
		Table: ansi.StyleTable{
			CenterSeparator: ptr("│"),
			ColumnSeparator: ptr("│"),
			RowSeparator:    ptr("─"),
		},
	}

	levels := []*ansi.StyleBlock{&cfg.H1, &cfg.H2, &cfg.H3, &cfg.H4, &cfg.H5, &cfg.H6}
	for i, h := range levels {
		h.Prefix = strings.Repeat("#", i+1) + " "
	}
	cfg.H6.Bold = ptr(false)

	return cfg
}
