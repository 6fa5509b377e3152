package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Enter      key.Binding
	ToggleMode key.Binding
	Menu       key.Binding
	Escape     key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Up:         key.NewBinding(key.WithKeys("up"), key.WithHelp("up", "move up")),
	Down:       key.NewBinding(key.WithKeys("down"), key.WithHelp("down", "move down")),
	Enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "auto-type selected")),
	ToggleMode: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "filter/search")),
	Menu:       key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "actions")),
	Escape:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear/cancel")),
	Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "cancel")),
}
