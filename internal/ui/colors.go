// Package ui holds the shared terminal palette and symbols used by both the
// dashboard and the plain-text command output.
package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Semantic colors for status indication, kept to the basic ANSI range so the
// dashboard reads correctly on any terminal theme.
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// ColorEnabled reports whether the environment supports color output.
// Piped output and dumb terminals get plain text.
func ColorEnabled() bool {
	return termenv.EnvColorProfile() != termenv.Ascii
}

// Paint colors text with the given ANSI color for terminal output. When
// output is piped or the terminal can't do color, the text passes through
// unchanged so scripts see clean lines.
func Paint(c lipgloss.Color, text string) string {
	if !ColorEnabled() {
		return text
	}
	return termenv.String(text).Foreground(termenv.ANSI.Color(string(c))).String()
}
