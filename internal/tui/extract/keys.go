package extract

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings
type KeyMap struct {
	Submit    key.Binding
	Focus     key.Binding
	Back      key.Binding
	Up        key.Binding
	Down      key.Binding
	Copy      key.Binding
	CopyAll   key.Binding
	Mailto    key.Binding
	OpenPage  key.Binding
	Reset     key.Binding
	ListReset key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

var DefaultKeyMap = KeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "extract"),
	),
	Focus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "results"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "tab", "shift+tab"),
		key.WithHelp("tab", "edit url"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c", "y", "enter"),
		key.WithHelp("c", "copy"),
	),
	CopyAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "copy all"),
	),
	Mailto: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "compose"),
	),
	OpenPage: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "open page"),
	),
	Reset: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "reset"),
	),
	ListReset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}
