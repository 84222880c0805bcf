package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Prev, Next, First key.Binding
	Focus             key.Binding
	Menu              key.Binding
	Up, Down, Select  key.Binding
	Close             key.Binding
	Quit              key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Prev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous")),
		Next:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		First:  key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
		Focus:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch carousel")),
		Menu:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "go to section")),
		Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close menu")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Focus, k.Menu, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.First, k.Focus},
		{k.Menu, k.Up, k.Down, k.Select, k.Close},
		{k.Quit},
	}
}
