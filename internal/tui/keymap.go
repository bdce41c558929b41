package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle     key.Binding
	Delete     key.Binding
	Add        key.Binding
	NextFilter key.Binding
	All        key.Binding
	Pending    key.Binding
	Completed  key.Binding
	Reload     key.Binding
	Quit       key.Binding
}

var defaultKeys = keyMap{
	Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	NextFilter: key.NewBinding(key.WithKeys("tab", "f"), key.WithHelp("tab", "next filter")),
	All:        key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
	Pending:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "pending")),
	Completed:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
	Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) short() []key.Binding {
	return []key.Binding{k.Toggle, k.Delete, k.Add, k.NextFilter, k.Reload}
}

func (k keyMap) full() []key.Binding {
	return []key.Binding{k.Toggle, k.Delete, k.Add, k.NextFilter, k.All, k.Pending, k.Completed, k.Reload}
}
