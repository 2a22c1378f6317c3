package components

import (
	"github.com/abhisek/learnpad/internal/ui/theme"
)

// Button is a labelled control that can be greyed out.
type Button struct {
	Label   string
	Enabled bool
}

// View renders the button.
func (b Button) View() string {
	if b.Enabled {
		return theme.ButtonActive.Render(b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}
