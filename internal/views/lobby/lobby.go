// Package lobby renders the list of players returned by a successful join.
package lobby

import (
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/jakebox/tui/internal/client"
	"github.com/jakebox/tui/internal/theme"
)

const (
	fps = 60
	// slideFrom is how many columns to the right the list starts when the
	// lobby first appears.
	slideFrom = 24.0
	// settleEpsilon is the distance and speed below which the spring stops.
	settleEpsilon = 0.01
)

// FrameMsg advances the entry animation by one frame.
type FrameMsg struct {
	Seq int
}

var (
	styleTitle  = theme.StyleHeader.Foreground(theme.ColorBrand)
	styleBullet = lipgloss.NewStyle().Foreground(theme.ColorAccent)
	styleEntry  = lipgloss.NewStyle().Foreground(theme.ColorBright)
)

// Model holds the players and the slide-in state.
type Model struct {
	players []client.Player

	spring   harmonica.Spring
	offset   float64
	velocity float64
	// seq invalidates frames from an earlier animation.
	seq int
}

// New creates an empty lobby view at rest.
func New() Model {
	return Model{
		spring: harmonica.NewSpring(harmonica.FPS(fps), 8.0, 1.0),
	}
}

// SetPlayers replaces the displayed players. The slice is copied.
func (m *Model) SetPlayers(players []client.Player) {
	m.players = append([]client.Player(nil), players...)
}

// Animating reports whether the slide-in is still running.
func (m Model) Animating() bool {
	return m.offset != 0 || m.velocity != 0
}

// Enter starts the slide-in animation.
func (m *Model) Enter() tea.Cmd {
	m.seq++
	m.offset = slideFrom
	m.velocity = 0
	return m.nextFrame()
}

func (m Model) nextFrame() tea.Cmd {
	seq := m.seq
	return tea.Tick(time.Second/fps, func(time.Time) tea.Msg {
		return FrameMsg{Seq: seq}
	})
}

// Update steps the spring on each frame until it settles.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	frame, ok := msg.(FrameMsg)
	if !ok || frame.Seq != m.seq || !m.Animating() {
		return m, nil
	}

	m.offset, m.velocity = m.spring.Update(m.offset, m.velocity, 0)
	if math.Abs(m.offset) < settleEpsilon && math.Abs(m.velocity) < settleEpsilon {
		m.offset, m.velocity = 0, 0
		return m, nil
	}
	return m, m.nextFrame()
}

// View renders the heading and one line per player, each showing the
// player's full record as JSON text.
func (m Model) View() string {
	indent := strings.Repeat(" ", int(math.Max(0, math.Round(m.offset))))

	lines := []string{indent + styleTitle.Render("Welcome to the Lobby!")}
	for _, p := range m.players {
		lines = append(lines, indent+styleBullet.Render("  • ")+styleEntry.Render(p.String()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
