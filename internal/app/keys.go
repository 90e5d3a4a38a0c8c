package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the app-level keyboard bindings. Form keys live in the
// login package.
type KeyMap struct {
	Quit       key.Binding
	Leave      key.Binding
	Debug      key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Close      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		// Leave is only enabled once the lobby is showing, because on the
		// form q and esc are ordinary input.
		Leave: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
		Debug: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "diagnostics"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "scroll down"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}
