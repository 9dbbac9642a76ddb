// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help toggles the help view.
	Help key.Binding

	// Back dismisses the dropdown, or returns to the previous location.
	Back key.Binding

	// Up moves the selection up.
	Up key.Binding

	// Down moves the selection down.
	Down key.Binding

	// Submit submits the query or the selected candidate.
	Submit key.Binding

	// Open opens the selected result in the browser.
	Open key.Binding

	// Copy copies the selected result's URL.
	Copy key.Binding

	// NewSearch focuses the query input on the results page.
	NewSearch key.Binding

	// Pane switches between results and facets.
	Pane key.Binding

	// Toggle flips the facet value or "Show more" control under the cursor.
	Toggle key.Binding

	// Sort cycles the sort order.
	Sort key.Binding

	// NextPage moves to the next results page.
	NextPage key.Binding

	// PrevPage moves to the previous results page.
	PrevPage key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "o"),
			key.WithHelp("enter/o", "open"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy url"),
		),
		NewSearch: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "new search"),
		),
		Pane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "facets"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "]", "l"),
			key.WithHelp("→", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "[", "h"),
			key.WithHelp("←", "prev page"),
		),
	}
}

// WidgetHelp returns keybindings for the search widget.
// j and k are typed into the query there, so only arrows are advertised.
func (k *KeyMap) WidgetHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Back, k.Quit}
}

// ResultsHelp returns keybindings for the results page.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Open, k.Pane, k.Sort, k.NextPage, k.NewSearch, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Submit, k.Back},
		{k.Open, k.Copy, k.NewSearch, k.Pane, k.Toggle},
		{k.Sort, k.PrevPage, k.NextPage},
		{k.Help, k.Quit},
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
