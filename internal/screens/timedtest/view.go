package timedtest

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpad/internal/ui/components"
	"github.com/abhisek/learnpad/internal/ui/theme"
)

func (s *TestScreen) View(width, height int) string {
	if s.session == nil {
		return renderComingSoon(width, height)
	}
	s.syncKeys()

	sess := s.session
	var b strings.Builder

	b.WriteString(theme.Subtitle.Render(fmt.Sprintf(
		"Question %d of %d   ·   %d answered",
		sess.CurrentIndex()+1, sess.Len(), sess.AnsweredCount(),
	)))
	b.WriteString("\n\n")

	remaining := 100 * sess.TimeRemaining() / sess.TimeBudget()
	b.WriteString(components.NewProgressBar("Time", remaining, false, max(min(width-8, 60), 20)).View())
	b.WriteString("\n\n")

	b.WriteString(theme.Body.Bold(true).Width(max(min(width-8, 72), 20)).Render(sess.Current().Prompt))
	b.WriteString("\n\n")
	b.WriteString(s.options.View())
	b.WriteString("\n")

	back := components.Button{Label: "← Back", Enabled: s.keys.Prev.Enabled()}
	next := components.Button{Label: "Next →", Enabled: s.keys.Next.Enabled()}
	if sess.IsLast() {
		next = components.Button{Label: "Submit", Enabled: s.keys.Submit.Enabled()}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, back.View(), "  ", next.View()))

	return lipgloss.NewStyle().Padding(1, 4).Render(b.String())
}

func renderComingSoon(width, height int) string {
	msg := theme.Title.Render("Questions coming soon") + "\n\n" +
		theme.Hint.Render("This timed test has no questions yet.")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}
