package chrome

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/jakebox/tui/internal/theme"
)

// Footer shows the short help for whichever bindings are active.
type Footer struct {
	help help.Model
}

// NewFooter creates a footer styled with the theme palette.
func NewFooter() Footer {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(theme.ColorAccent)
	h.Styles.ShortDesc = theme.StyleDimmed
	h.Styles.ShortSeparator = theme.StyleDimmed
	return Footer{help: h}
}

// SetWidth truncates the help line to width.
func (f *Footer) SetWidth(width int) {
	f.help.Width = width
}

// View renders the bindings as a single help line.
func (f Footer) View(bindings []key.Binding) string {
	return "  " + f.help.ShortHelpView(bindings)
}
