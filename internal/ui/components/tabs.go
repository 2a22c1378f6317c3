package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpad/internal/ui/theme"
)

// Tabs is a horizontal tab strip. Active wraps around in both directions.
type Tabs struct {
	Labels []string
	Active int
}

// Next moves to the following tab.
func (t *Tabs) Next() {
	if len(t.Labels) == 0 {
		return
	}
	t.Active = (t.Active + 1) % len(t.Labels)
}

// Prev moves to the preceding tab.
func (t *Tabs) Prev() {
	if len(t.Labels) == 0 {
		return
	}
	t.Active = (t.Active - 1 + len(t.Labels)) % len(t.Labels)
}

// View renders the strip.
func (t Tabs) View() string {
	cells := make([]string, 0, len(t.Labels))
	for i, l := range t.Labels {
		if i == t.Active {
			cells = append(cells, theme.TabActive.Render(l))
		} else {
			cells = append(cells, theme.TabInactive.Render(l))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
