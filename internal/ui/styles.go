package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): Primary text
// - Accent (soft purple #A78BFA): Highlights, paths, interactive elements
// - Muted (gray): Secondary info, line numbers
// - No colored success/error/warning - use unicode symbols only

var (
	// Accent style for file paths, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA"))

	// Muted style for secondary info, hints, line numbers
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA")).Bold(true)

	// accentColor holds the user-configured accent, empty when unset.
	accentColor string
)

// ConfigureTheme applies the configured accent color to the package styles.
// An empty value keeps the defaults; "none", "off", or "default" disable the
// accent entirely.
func ConfigureTheme(accent string) {
	color, ok := normalizeAccentColor(accent)
	if !ok {
		accentColor = ""
		switch strings.ToLower(strings.TrimSpace(accent)) {
		case "none", "off", "default":
			Accent = lipgloss.NewStyle()
			AccentBold = Bold
		}
		return
	}
	accentColor = color
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

// AccentColor returns the configured accent color, if any.
func AccentColor() (string, bool) {
	if accentColor == "" {
		return "", false
	}
	return accentColor, true
}

// normalizeAccentColor validates an accent value: ANSI color codes 0-255 or
// #RGB / #RRGGBB hex colors. Three-digit hex expands to six.
func normalizeAccentColor(accent string) (string, bool) {
	s := strings.TrimSpace(accent)
	if s == "" {
		return "", false
	}
	switch strings.ToLower(s) {
	case "none", "off", "default":
		return "", false
	}

	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		for _, r := range hex {
			if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
				return "", false
			}
		}
		switch len(hex) {
		case 3:
			var b strings.Builder
			b.WriteByte('#')
			for i := 0; i < 3; i++ {
				b.WriteByte(hex[i])
				b.WriteByte(hex[i])
			}
			return b.String(), true
		case 6:
			return s, true
		}
		return "", false
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 255 {
		return "", false
	}
	return s, true
}
