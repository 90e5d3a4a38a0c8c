// Package theme provides the Lip Gloss color palette and reusable styles
// for the jakebox TUI. It is a leaf package with no internal imports
// to avoid import cycles.
package theme

import "github.com/charmbracelet/lipgloss"

// Brand colors.
var (
	ColorBrand  = lipgloss.Color("#f472b6")
	ColorAccent = lipgloss.Color("#facc15")
)

// UI chrome colors.
var (
	ColorBorder  = lipgloss.Color("#4b5563")
	ColorDimmed  = lipgloss.Color("#6b7280")
	ColorBright  = lipgloss.Color("#f9fafb")
	ColorWarning = lipgloss.Color("#d97706")
	ColorDanger  = lipgloss.Color("#dc2626")
	ColorInfo    = lipgloss.Color("#3b82f6")
	ColorDebug   = lipgloss.Color("#7c3aed")
)

// LevelColor returns the color used for a log level name.
func LevelColor(level string) lipgloss.Color {
	switch level {
	case "debug":
		return ColorDebug
	case "info":
		return ColorInfo
	case "warn":
		return ColorWarning
	case "error":
		return ColorDanger
	default:
		return ColorDimmed
	}
}

// Reusable styles.
var (
	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBright)

	StyleDimmed = lipgloss.NewStyle().
			Foreground(ColorDimmed)
)
