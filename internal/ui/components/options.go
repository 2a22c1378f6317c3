package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnpad/internal/ui/theme"
)

// OptionStagedMsg is emitted when the learner presses select on an option.
type OptionStagedMsg struct {
	Option string
}

// OptionList is a cursor over answer options. The staged option is the
// learner's current pick and is drawn differently from the cursor.
type OptionList struct {
	Options []string
	Cursor  int
	Staged  string

	// Reveal marks the correct option and the staged one once the answer
	// has been checked.
	Reveal  bool
	Correct string

	keys KeyMap
}

// NewOptionList creates a list with the cursor on the staged option, or on
// the first option when nothing is staged.
func NewOptionList(options []string, staged string) OptionList {
	l := OptionList{Options: options, Staged: staged, keys: DefaultKeys()}
	for i, o := range options {
		if o == staged {
			l.Cursor = i
		}
	}
	return l
}

// Update moves the cursor and stages on select.
func (l OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || l.Reveal || len(l.Options) == 0 {
		return l, nil
	}

	switch {
	case key.Matches(kmsg, l.keys.Up):
		if l.Cursor > 0 {
			l.Cursor--
		}
	case key.Matches(kmsg, l.keys.Down):
		if l.Cursor < len(l.Options)-1 {
			l.Cursor++
		}
	case key.Matches(kmsg, l.keys.Select):
		opt := l.Options[l.Cursor]
		l.Staged = opt
		return l, func() tea.Msg { return OptionStagedMsg{Option: opt} }
	}
	return l, nil
}

// View renders one option per line with a letter label.
func (l OptionList) View() string {
	var b strings.Builder
	for i, opt := range l.Options {
		prefix := "  "
		if i == l.Cursor && !l.Reveal {
			prefix = "▸ "
		}
		mark := " "
		if opt == l.Staged {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %c)  %s", prefix, mark, 'A'+rune(i%26), opt)

		switch {
		case l.Reveal && opt == l.Correct:
			line = theme.Correct.Render(line)
		case l.Reveal && opt == l.Staged:
			line = theme.Incorrect.Render(line)
		case l.Reveal:
			line = theme.Subtitle.Render(line)
		case opt == l.Staged:
			line = theme.Staged.Render(line)
		case i == l.Cursor:
			line = theme.Selected.Render(line)
		default:
			line = theme.Unselected.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
