package controller

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the controller's key bindings.
type KeyMap struct {
	Pause  key.Binding
	Resume key.Binding
	Skip   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Pause:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
		Resume: key.NewBinding(key.WithKeys("r", "R"), key.WithHelp("r", "resume")),
		Skip:   key.NewBinding(key.WithKeys("s", "S"), key.WithHelp("s", "skip")),
		Quit:   key.NewBinding(key.WithKeys("q", "Q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Resume, k.Skip, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
