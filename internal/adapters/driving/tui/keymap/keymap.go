// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Focus focuses the search input and reopens an existing query.
	Focus key.Binding

	// Dismiss closes the result panel and blurs the input.
	Dismiss key.Binding

	// Blur moves focus away from the input.
	Blur key.Binding

	// Up moves the highlight up.
	Up key.Binding

	// Down moves the highlight down.
	Down key.Binding

	// Select opens the highlighted result.
	Select key.Binding

	// History opens recent navigations.
	History key.Binding

	// Back returns to the search view.
	Back key.Binding

	// ClearHistory forgets recent navigations.
	ClearHistory key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Focus: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "search"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Blur: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "leave input"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "select"),
		),
		History: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "recent"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		ClearHistory: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "clear"),
		),
	}
}

// ShortHelp returns the hints shown while the panel is closed.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.History, k.Quit}
}

// ResultsHelp returns the hints shown while results are listed.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Dismiss}
}

// HistoryHelp returns the hints of the recent navigations view.
func (k *KeyMap) HistoryHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.ClearHistory, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Focus, k.Dismiss, k.Blur},
		{k.Up, k.Down, k.Select},
		{k.History, k.ClearHistory, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
