package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnpad/internal/ui/layout"
)

// Screen is one page of the application, stacked by the router.
type Screen interface {
	Init() tea.Cmd

	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body between header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider screens supply their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Leaver screens are told when they are removed from the stack, so they can
// stop timers and background work.
type Leaver interface {
	Leave()
}

// Resumer screens are told when they become active again after the screen
// above them was removed.
type Resumer interface {
	Resume() tea.Cmd
}

// StatusProvider screens show a short status on the right of the header.
type StatusProvider interface {
	Status() string
}
