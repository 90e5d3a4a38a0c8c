// Package login provides the join form: a lobby code, a display name and a
// submit action that asks the backend to add the player to the lobby.
package login

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jakebox/tui/internal/client"
	"github.com/jakebox/tui/internal/theme"
)

// Joiner is the part of the HTTP client the form needs.
type Joiner interface {
	Join(ctx context.Context, accessCode, name string) ([]client.Player, error)
}

// JoinStartedMsg is emitted alongside every join command so the parent can
// log the attempt. It does not change any view state.
type JoinStartedMsg struct {
	AccessCode string
	Name       string
}

// KeyMap holds the form's key bindings.
type KeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
}

// DefaultKeyMap returns the default form bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "join lobby"),
		),
	}
}

const (
	fieldAccessCode = iota
	fieldName
	fieldCount
)

const inputWidth = 32

// Model is the join form.
type Model struct {
	ctx    context.Context
	joiner Joiner
	keys   KeyMap

	inputs [fieldCount]textinput.Model
	focus  int
}

// New creates an empty form with the access code field focused.
func New(ctx context.Context, joiner Joiner) Model {
	code := textinput.New()
	code.Prompt = "> "
	code.Placeholder = "Lobby Code"
	code.Width = inputWidth

	name := textinput.New()
	name.Prompt = "> "
	name.Placeholder = "Your Name"
	name.Width = inputWidth

	m := Model{
		ctx:    ctx,
		joiner: joiner,
		keys:   DefaultKeyMap(),
		inputs: [fieldCount]textinput.Model{code, name},
	}
	m.inputs[fieldAccessCode].Focus()
	return m
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// AccessCode returns the current lobby code text.
func (m Model) AccessCode() string {
	return m.inputs[fieldAccessCode].Value()
}

// Name returns the current display name text.
func (m Model) Name() string {
	return m.inputs[fieldName].Value()
}

// Bindings returns the form bindings for the help line.
func (m Model) Bindings() []key.Binding {
	return []key.Binding{m.keys.Next, m.keys.Submit}
}

// Update handles key presses. Enter from either field issues a join.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Submit):
			return m, m.submit()
		case key.Matches(msg, m.keys.Next):
			return m, m.setFocus((m.focus + 1) % fieldCount)
		case key.Matches(msg, m.keys.Prev):
			return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[m.focus].Focus()
}

// submit issues a join with the fields exactly as typed. No validation is
// applied and nothing guards against a join already in flight.
func (m Model) submit() tea.Cmd {
	code, name := m.AccessCode(), m.Name()
	started := func() tea.Msg {
		return JoinStartedMsg{AccessCode: code, Name: name}
	}
	return tea.Batch(started, doJoin(m.ctx, m.joiner, code, name))
}

func doJoin(ctx context.Context, j Joiner, accessCode, name string) tea.Cmd {
	return func() tea.Msg {
		players, err := j.Join(ctx, accessCode, name)
		return client.JoinResultMsg{
			AccessCode: accessCode,
			Name:       name,
			Players:    players,
			Err:        err,
		}
	}
}

var stylePrompt = lipgloss.NewStyle().Foreground(theme.ColorBright)

// View renders the form.
func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		stylePrompt.Render("Enter the lobby code:"),
		m.inputs[fieldAccessCode].View(),
		"",
		stylePrompt.Render("Pick a name:"),
		m.inputs[fieldName].View(),
		"",
		m.renderButton(),
	)
}

func (m Model) renderButton() string {
	return lipgloss.NewStyle().
		Padding(0, 2).
		Bold(true).
		Foreground(theme.ColorBright).
		Background(theme.ColorBrand).
		Render("Join Lobby")
}
