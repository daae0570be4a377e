package tui

import "github.com/charmbracelet/bubbles/key"

type global struct {
	Quit    key.Binding
	Help    key.Binding
	Send    key.Binding
	Newline key.Binding
	Clear   key.Binding
	NewChat key.Binding
	History key.Binding
}

var keys = global{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "toggle help"),
	),
	Send: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "send"),
	),
	Newline: key.NewBinding(
		key.WithKeys("alt+enter"),
		key.WithHelp("alt+enter", "newline"),
	),
	Clear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc esc", "clear input"),
	),
	NewChat: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("ctrl+n", "new chat"),
	),
	History: key.NewBinding(
		key.WithKeys("ctrl+h"),
		key.WithHelp("ctrl+h", "history"),
	),
}

func (g global) ShortHelp() []key.Binding {
	return []key.Binding{g.Help, g.Quit}
}

func (g global) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{g.Send, g.Newline, g.Clear},
		{g.NewChat, g.History},
		{g.Help, g.Quit},
	}
}
