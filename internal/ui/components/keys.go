package components

import (
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/learnpad/internal/ui/layout"
)

// KeyMap holds the bindings shared by every screen.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Next    key.Binding
	Prev    key.Binding
	Submit  key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Focus   key.Binding
	Filter  key.Binding
	Back    key.Binding
}

// DefaultKeys returns a fresh KeyMap. Screens own their copy so they can
// disable bindings without affecting each other.
func DefaultKeys() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "Up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "Down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", "space"),
			key.WithHelp("Enter", "Select"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "n"),
			key.WithHelp("→/n", "Next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "p"),
			key.WithHelp("←/p", "Back"),
		),
		Submit: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Submit"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "Next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-Tab", "Prev tab"),
		),
		Focus: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("^W", "Switch pane"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Filter"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "Back"),
		),
	}
}

// Hints converts bindings into footer hints, skipping disabled ones.
func Hints(bindings ...key.Binding) []layout.KeyHint {
	hints := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		hints = append(hints, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return hints
}
