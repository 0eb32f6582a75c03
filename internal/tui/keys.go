// internal/tui/keys.go
package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Select   key.Binding
	LowDown  key.Binding
	LowUp    key.Binding
	HighDown key.Binding
	HighUp   key.Binding
	Reset    key.Binding
	Help     key.Binding
	Quit     key.Binding
	CursorUp key.Binding
	CursorDn key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select site")),
		LowDown:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "low -step")),
		LowUp:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "low +step")),
		HighDown: key.NewBinding(key.WithKeys("{"), key.WithHelp("{", "high -step")),
		HighUp:   key.NewBinding(key.WithKeys("}"), key.WithHelp("}", "high +step")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset range")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		CursorUp: key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		CursorDn: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.LowDown, k.LowUp, k.HighDown, k.HighUp, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.CursorUp, k.CursorDn, k.Select},
		{k.LowDown, k.LowUp, k.HighDown, k.HighUp, k.Reset},
		{k.Help, k.Quit},
	}
}
