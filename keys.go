package main

import (
	"github.com/charmbracelet/bubbles/key"
)

type Keymap struct {
	Quit         key.Binding
	RowDown      key.Binding
	RowUp        key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Top          key.Binding
	Bottom       key.Binding
	Jump         key.Binding
	Search       key.Binding
	NextMatch    key.Binding
	PrevMatch    key.Binding
	CycleFlag    key.Binding
	PickFlag     key.Binding
	CycleContext key.Binding
	PickContext  key.Binding
	Reload       key.Binding
	CopyRow      key.Binding
	Export       key.Binding
	OpenHelp     key.Binding
	ScrollLeft   key.Binding
	ScrollRight  key.Binding
}

var Keys = Keymap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	RowDown: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "move down"),
	),
	RowUp: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "move up"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("u", "pgup"),
		key.WithHelp("u/pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("d", "pgdown"),
		key.WithHelp("d/pgdown", "page down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "first row"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "last row"),
	),
	Jump: key.NewBinding(
		key.WithKeys(":"),
		key.WithHelp(":", "jump to preview row"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search preview"),
	),
	NextMatch: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "next match"),
	),
	PrevMatch: key.NewBinding(
		key.WithKeys("N"),
		key.WithHelp("N", "previous match"),
	),
	CycleFlag: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "next flag column"),
	),
	PickFlag: key.NewBinding(
		key.WithKeys("O"),
		key.WithHelp("O", "choose flag column"),
	),
	CycleContext: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "next context column"),
	),
	PickContext: key.NewBinding(
		key.WithKeys("X"),
		key.WithHelp("X", "choose context column"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload csv"),
	),
	CopyRow: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy row to clipboard"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export charts and csv"),
	),
	OpenHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help / keys"),
	),
	ScrollLeft: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "scroll preview left"),
	),
	ScrollRight: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "scroll preview right"),
	),
}

func (k Keymap) Legend() []key.Binding {
	return []key.Binding{
		k.CycleFlag,
		k.PickFlag,
		k.CycleContext,
		k.PickContext,
		k.Reload,
		k.RowDown,
		k.RowUp,
		k.PageUp,
		k.PageDown,
		k.Top,
		k.Bottom,
		k.Jump,
		k.Search,
		k.NextMatch,
		k.PrevMatch,
		k.CopyRow,
		k.Export,
		k.Quit,
	}
}
