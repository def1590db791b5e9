package console

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings
type KeyMap struct {
	Submit   key.Binding
	HistPrev key.Binding
	HistNext key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Clear    key.Binding
	Quit     key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.HistPrev, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.HistPrev, k.HistNext},
		{k.PageUp, k.PageDown, k.Clear, k.Quit},
	}
}

var keys = KeyMap{
	Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
	HistPrev: key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "history")),
	HistNext: key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "history")),
	PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "scroll down")),
	Clear:    key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
	Quit:     key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("ctrl+c", "quit")),
}
