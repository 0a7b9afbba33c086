package ui

import (
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
)

// DefaultTermWidth is assumed when stdout is not a terminal or its size
// cannot be read.
const DefaultTermWidth = 120

// DisplayContext carries the terminal facts layout code needs: how wide
// to render and whether ANSI-heavy output is appropriate.
type DisplayContext struct {
	TermWidth int
	IsTTY     bool
}

// NewDisplayContext probes stdout once and captures its dimensions.
func NewDisplayContext() *DisplayContext {
	fd := os.Stdout.Fd()
	d := &DisplayContext{TermWidth: DefaultTermWidth, IsTTY: term.IsTerminal(fd)}
	if !d.IsTTY {
		return d
	}
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		d.TermWidth = w
	}
	return d
}

// NewDisplayContextWithWidth pins the width, for layout tests.
func NewDisplayContextWithWidth(width int) *DisplayContext {
	return &DisplayContext{TermWidth: width, IsTTY: true}
}

// IsInteractive reports whether both stdin and stdout are terminals.
// Confirmation prompts and per-conflict resolution need both.
func IsInteractive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}
