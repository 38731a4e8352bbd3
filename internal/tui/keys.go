package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit  key.Binding
	Erase   key.Binding
	Next    key.Binding
	Restart key.Binding
	Quit    key.Binding
	manual  bool
}

func newKeyMap(manual bool) keyMap {
	return keyMap{
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "check")),
		Erase:   key.NewBinding(key.WithKeys("backspace", "delete"), key.WithHelp("⌫", "erase")),
		Next:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "next")),
		Restart: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "restart")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
		manual:  manual,
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	if k.manual {
		return []key.Binding{k.Submit, k.Next, k.Erase, k.Restart, k.Quit}
	}
	return []key.Binding{k.Submit, k.Erase, k.Restart, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
