// Package debug provides the scrollable diagnostics overlay. Join attempts
// and failures land here as well as in the log file, since the login form
// itself never shows them.
package debug

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/jakebox/tui/internal/theme"
)

const maxEntries = 200

// Entry is a single diagnostic line.
type Entry struct {
	Time    time.Time
	Level   string // "debug", "info", "warn", "error"
	Message string
}

// Model holds diagnostics state.
type Model struct {
	Entries []Entry
	Offset  int // scroll offset (from bottom)

	now func() time.Time
}

// New creates an empty diagnostics model.
func New() Model {
	return Model{now: time.Now}
}

// Add appends an entry and caps the buffer.
func (m *Model) Add(level, message string) {
	now := time.Now
	if m.now != nil {
		now = m.now
	}
	m.Entries = append(m.Entries, Entry{
		Time:    now(),
		Level:   level,
		Message: message,
	})
	if len(m.Entries) > maxEntries {
		m.Entries = m.Entries[len(m.Entries)-maxEntries:]
	}
	m.Offset = 0
}

// Errors counts the error entries currently held.
func (m Model) Errors() int {
	n := 0
	for _, e := range m.Entries {
		if e.Level == "error" {
			n++
		}
	}
	return n
}

// ScrollUp moves the viewport up.
func (m *Model) ScrollUp(n int) {
	m.Offset += n
	limit := len(m.Entries) - 1
	if limit < 0 {
		limit = 0
	}
	if m.Offset > limit {
		m.Offset = limit
	}
}

// ScrollDown moves the viewport down.
func (m *Model) ScrollDown(n int) {
	m.Offset -= n
	if m.Offset < 0 {
		m.Offset = 0
	}
}

func panelStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Padding(1, 2).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorBorder)
}

// window returns the half-open range of entries visible with n rows.
func (m Model) window(n int) (start, end int) {
	end = max(len(m.Entries)-m.Offset, 0)
	return max(end-n, 0), end
}

// summary counts entries per level, in display order.
func (m Model) summary() string {
	counts := map[string]int{}
	for _, e := range m.Entries {
		counts[e.Level]++
	}
	var parts []string
	for _, lvl := range []string{"error", "warn", "info", "debug"} {
		if n := counts[lvl]; n > 0 {
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.LevelColor(lvl)).Render(fmt.Sprintf("%d %s", n, lvl)))
		}
	}
	return strings.Join(parts, theme.StyleDimmed.Render(" · "))
}

func renderEntry(e Entry, width int) string {
	stamp := theme.StyleDimmed.Render(e.Time.Format("15:04:05.000"))
	level := lipgloss.NewStyle().Foreground(theme.LevelColor(e.Level)).Width(6).Render(e.Level)
	// 12 for the timestamp, 6 for the level, 2 separators.
	room := max(width-20, 8)
	return stamp + " " + level + ansi.Truncate(e.Message, room, "…")
}

// View renders the log as a bordered panel sized to width and height.
func (m Model) View(width, height int) string {
	inner := max(width-4, 20)
	rows := max(height-6, 3)

	head := theme.StyleHeader.Render(" DIAGNOSTICS ")
	foot := theme.StyleDimmed.Render("up/down:scroll  ctrl+d:close")

	if len(m.Entries) == 0 {
		empty := theme.StyleDimmed.Render("  Nothing logged yet.")
		return panelStyle(inner).Render(lipgloss.JoinVertical(lipgloss.Left, head, "", empty, "", foot))
	}

	start, end := m.window(rows)
	lines := make([]string, 0, end-start)
	// Padding eats 4 columns of the panel width.
	for _, e := range m.Entries[start:end] {
		lines = append(lines, renderEntry(e, inner-4))
	}

	parts := []string{head + " " + m.summary(), strings.Join(lines, "\n")}
	if m.Offset > 0 {
		parts = append(parts, theme.StyleDimmed.Render(fmt.Sprintf(" ↓ %d newer", m.Offset)))
	}
	parts = append(parts, foot)
	return panelStyle(inner).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
