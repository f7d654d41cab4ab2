package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Rename key.Binding
	Export key.Binding
	Import key.Binding
	Reset  key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k", "+"), key.WithHelp("↑/+", "point")),
		Down:   key.NewBinding(key.WithKeys("down", "j", "-"), key.WithHelp("↓/-", "take back")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "switch player")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h")),
		Rename: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "rename")),
		Export: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export CSV")),
		Import: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import CSV")),
		Reset:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reset")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) helpLine() string {
	out := ""
	for i, b := range []key.Binding{k.Up, k.Down, k.Next, k.Rename, k.Export, k.Import, k.Reset, k.Quit} {
		h := b.Help()
		if i > 0 {
			out += "  "
		}
		out += "[" + h.Key + "] " + h.Desc
	}
	return out
}
