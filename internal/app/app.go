package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jakebox/tui/internal/client"
	"github.com/jakebox/tui/internal/views/chrome"
	"github.com/jakebox/tui/internal/views/debug"
	"github.com/jakebox/tui/internal/views/lobby"
	"github.com/jakebox/tui/internal/views/login"
	"go.uber.org/zap"
)

// Model is the root Bubble Tea model. It owns State and decides whether the
// join form or the lobby is shown.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	log    *zap.Logger

	keys   KeyMap
	width  int
	height int

	state State

	// Sub-views.
	header chrome.Header
	footer chrome.Footer
	login  login.Model
	lobby  lobby.Model
	debug  debug.Model

	showDebug bool
}

// New creates the root model. style is the glamour style for the banner.
func New(joiner login.Joiner, log *zap.Logger, style string) Model {
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	keys := DefaultKeyMap()
	keys.Leave.SetEnabled(false)
	return Model{
		ctx:    ctx,
		cancel: cancel,
		log:    log.Named("app"),
		keys:   keys,
		header: chrome.NewHeader(style),
		footer: chrome.NewFooter(),
		login:  login.New(ctx, joiner),
		lobby:  lobby.New(),
		debug:  debug.New(),
	}
}

// State returns the current view state.
func (m Model) State() State {
	return m.state
}

// Init starts the form cursor.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("JAKEBOX"), m.login.Init())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.header.SetWidth(msg.Width)
		m.footer.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case login.JoinStartedMsg:
		m.log.Debug("joining lobby",
			zap.String("access_code", msg.AccessCode),
			zap.String("name", msg.Name))
		m.debug.Add("debug", fmt.Sprintf("POST /sessions/%s/players name=%q", msg.AccessCode, msg.Name))
		return m, nil

	case client.JoinResultMsg:
		return m.handleJoinResult(msg)

	case lobby.FrameMsg:
		var cmd tea.Cmd
		m.lobby, cmd = m.lobby.Update(msg)
		return m, cmd
	}

	if !m.state.Joined {
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleJoinResult applies a join result. Failures are only logged: the form
// keeps its values and shows nothing.
func (m Model) handleJoinResult(msg client.JoinResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		fields := []zap.Field{
			zap.String("access_code", msg.AccessCode),
			zap.Error(msg.Err),
		}
		var se *client.StatusError
		if errors.As(msg.Err, &se) {
			fields = append(fields, zap.Int("status", se.Code))
		}
		m.log.Error("error during API call", fields...)
		m.debug.Add("error", msg.Err.Error())
		return m, nil
	}

	wasJoined := m.state.Joined
	m.state = m.state.Apply(msg)
	m.lobby.SetPlayers(m.state.Players)
	m.keys.Leave.SetEnabled(true)

	m.log.Info("joined lobby",
		zap.String("access_code", msg.AccessCode),
		zap.Int("players", len(msg.Players)))
	m.debug.Add("info", fmt.Sprintf("joined lobby %s with %d players", msg.AccessCode, len(msg.Players)))

	if wasJoined {
		return m, nil
	}
	return m, m.lobby.Enter()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Debug):
		m.showDebug = !m.showDebug
		return m, nil
	}

	if m.showDebug {
		switch {
		case key.Matches(msg, m.keys.Close):
			m.showDebug = false
		case key.Matches(msg, m.keys.ScrollUp):
			m.debug.ScrollUp(1)
		case key.Matches(msg, m.keys.ScrollDown):
			m.debug.ScrollDown(1)
		}
		return m, nil
	}

	if m.state.Joined {
		if key.Matches(msg, m.keys.Leave) {
			return m.quit()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.login, cmd = m.login.Update(msg)
	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.cancel()
	m.log.Info("quit",
		zap.Bool("joined", m.state.Joined),
		zap.Int("failed_joins", m.debug.Errors()))
	return m, tea.Quit
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var body string
	switch {
	case m.showDebug:
		body = m.debug.View(m.width, m.height-6)
	case m.state.Joined:
		body = m.lobby.View()
	default:
		body = m.login.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		"",
		lipgloss.NewStyle().PaddingLeft(2).Render(body),
		"",
		m.footer.View(m.bindings()),
	)
}

func (m Model) bindings() []key.Binding {
	if m.showDebug {
		return []key.Binding{m.keys.ScrollUp, m.keys.ScrollDown, m.keys.Close, m.keys.Quit}
	}
	var b []key.Binding
	if !m.state.Joined {
		b = append(b, m.login.Bindings()...)
	}
	return append(b, m.keys.Leave, m.keys.Debug, m.keys.Quit)
}
