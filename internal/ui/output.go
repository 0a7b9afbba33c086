// Package ui renders the human-facing side of the CLI: status lines,
// aligned tables, plan previews, and Markdown. Everything here returns
// plain strings; callers decide the stream.
package ui

import "fmt"

// Status glyphs. Status lines stay uncolored so they read the same
// under redirection; the glyph alone carries the meaning.
const (
	glyphOK   = "✓"
	glyphFail = "✗"
	glyphWarn = "⚠"
	glyphNote = "ℹ"
)

func statusLine(glyph, msg string) string {
	return glyph + " " + msg
}

// Success marks msg as completed.
func Success(msg string) string { return statusLine(glyphOK, msg) }

// Successf formats and marks a completed message.
func Successf(format string, args ...interface{}) string {
	return Success(fmt.Sprintf(format, args...))
}

// Error marks msg as failed.
func Error(msg string) string { return statusLine(glyphFail, msg) }

// Errorf formats and marks a failed message.
func Errorf(format string, args ...interface{}) string {
	return Error(fmt.Sprintf(format, args...))
}

// Warning marks msg as a non-fatal problem.
func Warning(msg string) string { return statusLine(glyphWarn, msg) }

// Warningf formats and marks a non-fatal problem.
func Warningf(format string, args ...interface{}) string {
	return Warning(fmt.Sprintf(format, args...))
}

// Info marks msg as informational.
func Info(msg string) string { return statusLine(glyphNote, msg) }

// Infof formats and marks an informational message.
func Infof(format string, args ...interface{}) string {
	return Info(fmt.Sprintf(format, args...))
}

// Header renders a bold section heading.
func Header(msg string) string { return Bold.Render(msg) }

// FilePath renders a vault-relative path in the accent color.
func FilePath(path string) string { return Accent.Render(path) }

// Hint renders muted guidance text, used for next-step suggestions.
func Hint(msg string) string { return Muted.Render(msg) }
