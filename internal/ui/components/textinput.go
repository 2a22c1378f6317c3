package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// FilterInput is a single-line query box used to narrow lists.
type FilterInput struct {
	Model textinput.Model
}

// NewFilterInput creates an unfocused filter box.
func NewFilterInput(placeholder string) FilterInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "/ "
	ti.CharLimit = 40
	return FilterInput{Model: ti}
}

// Focus starts capturing keys.
func (f *FilterInput) Focus() tea.Cmd {
	return f.Model.Focus()
}

// Blur stops capturing keys.
func (f *FilterInput) Blur() {
	f.Model.Blur()
}

// Focused reports whether the box is capturing keys.
func (f FilterInput) Focused() bool {
	return f.Model.Focused()
}

// Reset clears the query and blurs.
func (f *FilterInput) Reset() {
	f.Model.SetValue("")
	f.Model.Blur()
}

// Update forwards to the underlying input.
func (f FilterInput) Update(msg tea.Msg) (FilterInput, tea.Cmd) {
	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd
}

// View renders the input.
func (f FilterInput) View() string {
	return f.Model.View()
}

// Matches reports whether s contains the query, ignoring case.
func (f FilterInput) Matches(s string) bool {
	q := strings.TrimSpace(f.Model.Value())
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(q))
}
