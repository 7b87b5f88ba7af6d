package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Choose   key.Binding
	Pick     key.Binding
	Clear    key.Binding
	Check    key.Binding
	Reveal   key.Binding
	Next     key.Binding
	NextKind key.Binding
	PrevKind key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Choose:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Pick:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "pick")),
		Clear:    key.NewBinding(key.WithKeys("backspace", "x"), key.WithHelp("x", "clear")),
		Check:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "check")),
		Reveal:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "show answer")),
		Next:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
		NextKind: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next kind")),
		PrevKind: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev kind")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Choose, k.Check, k.Reveal, k.Next, k.NextKind, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Choose, k.Pick, k.Clear},
		{k.Check, k.Reveal, k.Next},
		{k.NextKind, k.PrevKind, k.Quit},
	}
}
