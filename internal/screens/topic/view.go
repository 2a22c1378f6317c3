package topic

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpad/internal/assessment"
	"github.com/abhisek/learnpad/internal/mastery"
	"github.com/abhisek/learnpad/internal/screens/results"
	"github.com/abhisek/learnpad/internal/ui/components"
	"github.com/abhisek/learnpad/internal/ui/layout"
	"github.com/abhisek/learnpad/internal/ui/theme"
)

const entriesWidth = 36

func masteryLabel(pct int) string {
	return fmt.Sprintf("Mastery %d%%", pct)
}

func (s *TopicScreen) View(width, height int) string {
	if s.loadErr != nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Incorrect.Render("Could not load progress: "+s.loadErr.Error()))
	}
	if s.state == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Loading…"))
	}

	if layout.IsCompactWidth(width) {
		if s.focus == paneEntries {
			return s.renderEntries(width, height)
		}
		return s.renderContent(width, height)
	}

	left := s.renderEntries(entriesWidth, height)
	right := s.renderContent(width-entriesWidth-1, height)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func (s *TopicScreen) renderEntries(width, height int) string {
	inner := max(width-6, 10)

	var b strings.Builder
	b.WriteString(components.NewProgressBar("Mastery", s.state.Percentage(), true, inner).View())
	b.WriteString("\n")

	flat := 0
	for i, su := range s.topic.SubUnits {
		b.WriteString("\n")
		b.WriteString(theme.Heading.Render(su.Heading))
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("  %d%%", s.state.SubUnitPercentage(i))))
		b.WriteString("\n")
		for _, e := range su.Entries {
			prefix := "  "
			if flat == s.cursor && s.focus == paneEntries {
				prefix = "▸ "
			}
			line := prefix + truncate(e.Title, inner-8) + "  " + visitMarks(s.state.Visited(e.ID))
			switch {
			case s.selected != nil && e.ID == s.selected.ID:
				line = theme.Selected.Render(line)
			case flat == s.cursor:
				line = theme.Staged.Render(line)
			default:
				line = theme.Unselected.Render(line)
			}
			b.WriteString(line + "\n")
			flat++
		}
	}

	style := theme.Card
	if s.focus == paneEntries {
		style = theme.FocusedCard
	}
	return style.Width(width).Height(max(height-2, 3)).Render(b.String())
}

// visitMarks renders one letter per activity, lit when visited.
func visitMarks(set mastery.ActivitySet) string {
	var b strings.Builder
	for _, a := range mastery.Activities {
		letter := strings.ToUpper(string(a)[:1])
		if set.Has(a) {
			b.WriteString(theme.Correct.Render(letter))
		} else {
			b.WriteString(theme.Disabled.Render(letter))
		}
	}
	return b.String()
}

func (s *TopicScreen) renderContent(width, height int) string {
	style := theme.Card
	if s.focus == paneContent {
		style = theme.FocusedCard
	}
	inner := max(width-6, 10)
	bodyHeight := max(height-8, 3)

	var body string
	switch e := s.selected; {
	case e == nil:
		body = theme.Hint.Render("Pick an entry to begin.")
	case s.tabs.Active == tabLesson:
		body = s.renderLesson(inner, bodyHeight)
	case s.tabs.Active == tabQuiz:
		n := len(e.QuizQuestions())
		if n == 0 {
			body = theme.Hint.Render("No quick quiz for this entry yet.")
		} else {
			body = theme.Body.Render(fmt.Sprintf("%d questions, checked as you go.", n)) +
				"\n\n" + theme.Hint.Render("Press Enter to start.")
		}
	case s.tabs.Active == tabTest:
		body = s.renderTestTab(e.TestQuestions(), e.ID)
	}

	title := ""
	if s.selected != nil {
		title = theme.Title.Render(s.selected.Title) + "\n\n"
	}
	return style.Width(width).Height(max(height-2, 3)).Render(
		title + s.tabs.View() + "\n\n" + body,
	)
}

func (s *TopicScreen) renderLesson(width, height int) string {
	e := s.selected
	if !e.HasLesson() {
		return theme.Hint.Render("No lesson for this entry yet.")
	}
	text := e.Lesson.Body
	if e.Lesson.Title != "" {
		text = theme.Heading.Render(e.Lesson.Title) + "\n\n" + text
	}
	s.viewport.SetWidth(width)
	s.viewport.SetHeight(height)
	s.viewport.SetContent(theme.Body.Width(width).Render(text))
	return s.viewport.View()
}

func (s *TopicScreen) renderTestTab(questions []assessment.Question, entryID string) string {
	if len(questions) == 0 {
		return theme.Title.Render("Questions coming soon")
	}
	limit := results.FormatSeconds(len(questions) * assessment.SecondsPerQuestion)
	out := theme.Body.Render(fmt.Sprintf("%d questions, %s on the clock.", len(questions), limit))
	if a, ok := s.best[entryID]; ok {
		out += "\n" + theme.Subtitle.Render(fmt.Sprintf("Best so far: %d%% (%d/%d)", a.AccuracyPercent, a.Correct, a.Correct+a.Incorrect))
	}
	return out + "\n\n" + theme.Hint.Render("Press Enter to start.")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
