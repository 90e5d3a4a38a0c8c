package app

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-chi/chi/v5"
	"github.com/jakebox/tui/internal/client"
	"github.com/jakebox/tui/internal/views/login"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubJoiner struct {
	players []client.Player
	err     error
}

func (s stubJoiner) Join(context.Context, string, string) ([]client.Player, error) {
	return s.players, s.err
}

func newTestModel(t *testing.T, j login.Joiner) (Model, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	m := New(j, zap.New(core), "notty")
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model), logs
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

// drain runs cmd, feeds every resulting message back into the model and
// repeats until no commands remain. Animation frames are skipped.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
			continue
		case client.JoinResultMsg, login.JoinStartedMsg:
			m, _ = update(t, m, msg)
		}
	}
	return m
}

func playerList(raw ...string) []client.Player {
	out := make([]client.Player, len(raw))
	for i, r := range raw {
		out[i] = client.Player(r)
	}
	return out
}

func TestInitialState(t *testing.T) {
	m, _ := newTestModel(t, stubJoiner{})
	assert.False(t, m.State().Joined)
	assert.Empty(t, m.State().Players)

	v := m.View()
	assert.Contains(t, v, "JAKEBOX")
	assert.Contains(t, v, "Enter the lobby code:")
	assert.NotContains(t, v, "Welcome to the Lobby!")
}

func TestViewBeforeResize(t *testing.T) {
	m := New(stubJoiner{}, nil, "notty")
	assert.Equal(t, "Initializing...", m.View())
}

func TestJoinSuccessShowsLobby(t *testing.T) {
	m, logs := newTestModel(t, stubJoiner{})
	m, cmd := update(t, m, client.JoinResultMsg{
		AccessCode: "1234",
		Players:    playerList(`{"name":"Alice"}`),
	})
	require.NotNil(t, cmd, "entering the lobby should start the slide-in")

	assert.True(t, m.State().Joined)
	v := m.View()
	assert.Contains(t, v, "Welcome to the Lobby!")
	assert.Contains(t, v, `{"name":"Alice"}`)
	assert.NotContains(t, v, "Enter the lobby code:")
	assert.Equal(t, 1, logs.FilterMessage("joined lobby").Len())
}

func TestJoinEmptyListStillTransitions(t *testing.T) {
	m, _ := newTestModel(t, stubJoiner{})
	m, _ = update(t, m, client.JoinResultMsg{AccessCode: "1234", Players: playerList()})

	assert.True(t, m.State().Joined)
	assert.Empty(t, m.State().Players)
	assert.Contains(t, m.View(), "Welcome to the Lobby!")
}

func TestJoinFailuresLeaveStateUnchanged(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"not found", fmt.Errorf("POST /sessions/bad/players: %w", &client.StatusError{Code: 404, Body: "Session not found."})},
		{"network", fmt.Errorf("POST /sessions/1234/players: %w: connection refused", client.ErrNetwork)},
		{"parse", fmt.Errorf("POST /sessions/1234/players: %w", client.ErrParse)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, logs := newTestModel(t, stubJoiner{})
			m = typeText(t, m, "bad")
			before := m.View()

			m, cmd := update(t, m, client.JoinResultMsg{AccessCode: "bad", Err: tt.err})
			assert.Nil(t, cmd)
			assert.False(t, m.State().Joined)
			assert.Empty(t, m.State().Players)
			assert.Equal(t, before, m.View(), "no error indicator should appear on the form")
			assert.Equal(t, "bad", m.login.AccessCode())

			entries := logs.FilterMessage("error during API call").All()
			require.Len(t, entries, 1)
			assert.Equal(t, "bad", entries[0].ContextMap()["access_code"])
			assert.Equal(t, 1, m.debug.Errors())
		})
	}
}

func TestStatusFailureLogsCode(t *testing.T) {
	m, logs := newTestModel(t, stubJoiner{})
	err := fmt.Errorf("POST: %w", &client.StatusError{Code: 404})
	update(t, m, client.JoinResultMsg{AccessCode: "bad", Err: err})

	entries := logs.FilterMessage("error during API call").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, 404, entries[0].ContextMap()["status"])
}

func TestLastJoinResultWins(t *testing.T) {
	m, _ := newTestModel(t, stubJoiner{})
	m, _ = update(t, m, client.JoinResultMsg{Players: playerList(`{"name":"A"}`)})
	m, cmd := update(t, m, client.JoinResultMsg{Players: playerList(`{"name":"A"}`, `{"name":"B"}`)})

	assert.Nil(t, cmd, "a second success should not restart the animation")
	assert.Len(t, m.State().Players, 2)
	assert.Contains(t, m.View(), `{"name":"B"}`)
}

func TestFailureAfterJoinDoesNotRevert(t *testing.T) {
	m, _ := newTestModel(t, stubJoiner{})
	m, _ = update(t, m, client.JoinResultMsg{Players: playerList(`{"name":"A"}`)})
	m, _ = update(t, m, client.JoinResultMsg{Err: client.ErrNetwork})

	assert.True(t, m.State().Joined)
	assert.Len(t, m.State().Players, 1)
	assert.NotContains(t, m.View(), "Enter the lobby code:")
}

func TestStateApply(t *testing.T) {
	s := State{}
	s = s.Apply(client.JoinResultMsg{Err: client.ErrParse})
	assert.Equal(t, State{}, s)

	p := playerList(`{"name":"Alice"}`)
	s = s.Apply(client.JoinResultMsg{Players: p})
	assert.Equal(t, State{Joined: true, Players: p}, s)
}

func TestQuitKeys(t *testing.T) {
	m, _ := newTestModel(t, stubJoiner{})

	// q is ordinary input on the form.
	m = typeText(t, m, "q")
	assert.Equal(t, "q", m.login.AccessCode())

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Error(t, m.ctx.Err(), "quitting cancels in-flight requests")
}

func TestQuitLogsFailureCount(t *testing.T) {
	m, logs := newTestModel(t, stubJoiner{})
	m, _ = update(t, m, client.JoinResultMsg{AccessCode: "bad", Err: client.ErrNetwork})
	m, _ = update(t, m, client.JoinResultMsg{AccessCode: "bad", Err: client.ErrParse})
	update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	entries := logs.FilterMessage("quit").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, 2, entries[0].ContextMap()["failed_joins"])
	assert.Equal(t, false, entries[0].ContextMap()["joined"])
}

func TestLeaveFromLobby(t *testing.T) {
	m, _ := newTestModel(t, stubJoiner{})
	m, _ = update(t, m, client.JoinResultMsg{Players: playerList()})
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestDebugOverlay(t *testing.T) {
	m, _ := newTestModel(t, stubJoiner{})
	m, _ = update(t, m, client.JoinResultMsg{AccessCode: "bad", Err: client.ErrNetwork})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	v := m.View()
	assert.Contains(t, v, "DIAGNOSTICS")
	assert.Contains(t, v, "network error")
	assert.NotContains(t, v, "Enter the lobby code:")

	// Keys go to the overlay, not the form.
	m = typeText(t, m, "x")
	assert.Empty(t, m.login.AccessCode())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Contains(t, m.View(), "Enter the lobby code:")
}

func TestFooterHelpFollowsScreen(t *testing.T) {
	m, _ := newTestModel(t, stubJoiner{})
	assert.Contains(t, m.View(), "join lobby")

	m, _ = update(t, m, client.JoinResultMsg{Players: playerList()})
	v := m.View()
	assert.NotContains(t, v, "join lobby")
	assert.Contains(t, v, "quit")
}

// newLobbyServer fakes the backend's join route.
func newLobbyServer(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Post("/sessions/{accessCode}/players", func(w http.ResponseWriter, req *http.Request) {
		body, _ := io.ReadAll(req.Body)
		if chi.URLParam(req, "accessCode") != "1234" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"detail":"Session not found."}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `[%s]`, strings.TrimSpace(string(body)))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func joinThroughForm(t *testing.T, m Model, code, name string) Model {
	t.Helper()
	m = typeText(t, m, code)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, name)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	return drain(t, m, cmd)
}

func TestEndToEndJoin(t *testing.T) {
	srv := newLobbyServer(t)
	m, _ := newTestModel(t, client.NewHTTPClient(srv.URL, 0, nil))

	m = joinThroughForm(t, m, "1234", "Alice")
	require.True(t, m.State().Joined)
	require.Len(t, m.State().Players, 1)
	assert.Equal(t, `{"name":"Alice"}`, m.State().Players[0].String())
	assert.Contains(t, m.View(), `{"name":"Alice"}`)
}

func TestEndToEndUnknownLobby(t *testing.T) {
	srv := newLobbyServer(t)
	m, logs := newTestModel(t, client.NewHTTPClient(srv.URL, 0, nil))

	m = joinThroughForm(t, m, "bad", "Alice")
	assert.False(t, m.State().Joined)
	assert.Contains(t, m.View(), "Enter the lobby code:")
	assert.Equal(t, 1, logs.FilterMessage("error during API call").Len())
	assert.Equal(t, 1, logs.FilterMessage("joining lobby").Len())
}

func TestEndToEndConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	m, _ := newTestModel(t, client.NewHTTPClient("http://"+addr, 0, nil))
	require.NotPanics(t, func() {
		m = joinThroughForm(t, m, "1234", "Alice")
	})
	assert.False(t, m.State().Joined)
	assert.Contains(t, m.View(), "Enter the lobby code:")
}
