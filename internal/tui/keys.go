package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Snooze5  key.Binding
	Snooze10 key.Binding
	Snooze15 key.Binding
	Dismiss  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Snooze5, k.Dismiss, k.Quit, k.Help}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Snooze5, k.Snooze10, k.Snooze15},
		{k.Dismiss, k.Help, k.Quit},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Snooze5: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "snooze 5m"),
		),
		Snooze10: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "snooze 10m"),
		),
		Snooze15: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "snooze 15m"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("d", "enter"),
			key.WithHelp("d", "dismiss"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
