// Package quiz is the untimed practice screen with immediate feedback.
package quiz

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpad/internal/assessment"
	"github.com/abhisek/learnpad/internal/router"
	"github.com/abhisek/learnpad/internal/screen"
	"github.com/abhisek/learnpad/internal/ui/components"
	"github.com/abhisek/learnpad/internal/ui/layout"
	"github.com/abhisek/learnpad/internal/ui/theme"
)

// QuizScreen walks a quick quiz one question at a time. Answers are checked
// as soon as they are picked and are not stored.
type QuizScreen struct {
	title     string
	questions []assessment.Question
	index     int
	correct   int
	options   components.OptionList
	done      bool
	keys      components.KeyMap
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen.
func New(title string, questions []assessment.Question) *QuizScreen {
	s := &QuizScreen{title: title, questions: questions, keys: components.DefaultKeys()}
	s.keys.Next.SetHelp("→/n", "Continue")
	if len(questions) == 0 {
		s.done = true
		return s
	}
	s.resetOptions()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return "Quick Quiz: " + s.title
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.done:
		return components.Hints(s.keys.Select, s.keys.Back)
	case s.options.Reveal:
		return components.Hints(s.keys.Next, s.keys.Back)
	default:
		return components.Hints(s.keys.Up, s.keys.Down, s.keys.Select, s.keys.Back)
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.OptionStagedMsg:
		s.check(msg.Option)
		return s, nil
	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if s.done {
		if key.Matches(msg, s.keys.Select) {
			return router.Pop()
		}
		return nil
	}

	if s.options.Reveal {
		if key.Matches(msg, s.keys.Next) || key.Matches(msg, s.keys.Select) {
			s.next()
		}
		return nil
	}

	var cmd tea.Cmd
	s.options, cmd = s.options.Update(msg)
	return cmd
}

func (s *QuizScreen) check(option string) {
	if s.done || s.options.Reveal {
		return
	}
	q := s.questions[s.index]
	s.options.Staged = option
	s.options.Reveal = true
	s.options.Correct = q.CorrectAnswer
	if q.IsCorrect(option) {
		s.correct++
	}
}

func (s *QuizScreen) next() {
	if s.index+1 >= len(s.questions) {
		s.done = true
		return
	}
	s.index++
	s.resetOptions()
}

func (s *QuizScreen) resetOptions() {
	s.options = components.NewOptionList(s.questions[s.index].SortedOptions(), "")
}

func (s *QuizScreen) View(width, height int) string {
	if len(s.questions) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Title.Render("No quiz for this entry yet"))
	}
	if s.done {
		msg := theme.Title.Render("Quiz complete") + "\n\n" +
			theme.Body.Render(fmt.Sprintf("%d of %d correct", s.correct, len(s.questions)))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
	}

	q := s.questions[s.index]
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Question %d of %d", s.index+1, len(s.questions))))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Bold(true).Width(max(min(width-8, 72), 20)).Render(q.Prompt))
	b.WriteString("\n\n")
	b.WriteString(s.options.View())

	if s.options.Reveal {
		b.WriteString("\n")
		if q.IsCorrect(s.options.Staged) {
			b.WriteString(theme.Correct.Render("✓ Correct"))
		} else {
			b.WriteString(theme.Incorrect.Render("✗ Not quite. The answer is " + q.CorrectAnswer))
		}
	}
	return lipgloss.NewStyle().Padding(1, 4).Render(b.String())
}
