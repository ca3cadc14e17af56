package tui

import "github.com/charmbracelet/bubbles/key"

// Button keys in light order for each player.
var lightKeys = [2]string{"12345", "67890"}

type keyMap struct {
	P1Lights key.Binding
	P1Start  key.Binding
	P2Lights key.Binding
	P2Start  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		P1Lights: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "p1 buttons"),
		),
		P1Start: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "p1 start"),
		),
		P2Lights: key.NewBinding(
			key.WithKeys("6", "7", "8", "9", "0"),
			key.WithHelp("6-0", "p2 buttons"),
		),
		P2Start: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "p2 start"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.P1Lights, k.P1Start, k.P2Lights, k.P2Start, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.P1Lights, k.P1Start},
		{k.P2Lights, k.P2Start},
		{k.Help, k.Quit},
	}
}
