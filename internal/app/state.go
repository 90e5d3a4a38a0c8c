package app

import "github.com/jakebox/tui/internal/client"

// State is the shared view state. It starts not joined with no players and
// moves to joined exactly when a join succeeds; nothing moves it back.
type State struct {
	Joined  bool
	Players []client.Player
}

// Apply reduces a join result into a new state. Failed results leave the
// state untouched. A success replaces the players first and then marks the
// session joined, even when the list is empty or a lobby is already shown.
func (s State) Apply(r client.JoinResultMsg) State {
	if r.Err != nil {
		return s
	}
	s.Players = r.Players
	s.Joined = true
	return s
}
