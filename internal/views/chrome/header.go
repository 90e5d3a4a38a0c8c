// Package chrome renders the static frame around every screen: the
// JAKEBOX banner on top and the key help line at the bottom.
package chrome

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/jakebox/tui/internal/theme"
)

const (
	bannerMarkdown = "# JAKEBOX"
	defaultWidth   = 80
)

// Header is the banner. It re-renders only when the width changes.
type Header struct {
	style    string
	width    int
	rendered string
}

// NewHeader renders the banner with the given glamour style.
func NewHeader(style string) Header {
	h := Header{style: style}
	h.SetWidth(defaultWidth)
	return h
}

// SetWidth re-renders the banner for a new terminal width.
func (h *Header) SetWidth(width int) {
	if width <= 0 {
		width = defaultWidth
	}
	if width == h.width && h.rendered != "" {
		return
	}
	h.width = width
	h.rendered = renderBanner(h.style, width)
}

// View returns the rendered banner.
func (h Header) View() string {
	return h.rendered
}

func renderBanner(style string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if out, err := r.Render(bannerMarkdown); err == nil {
			return strings.Trim(out, "\n")
		}
	}
	// Unknown style or render failure: fall back to plain Lip Gloss.
	return theme.StyleHeader.Foreground(theme.ColorBrand).Render("JAKEBOX")
}
