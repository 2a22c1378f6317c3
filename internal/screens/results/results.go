package results

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

// ResultsScreen shows the score of a finished timed test.
type ResultsScreen struct {
	entryTitle string
	summary    assessment.ScoreSummary
	keys       components.KeyMap
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen for one submitted test.
func New(entryTitle string, summary assessment.ScoreSummary) *ResultsScreen {
	keys := components.DefaultKeys()
	keys.Select.SetHelp("Enter", "Continue")
	return &ResultsScreen{entryTitle: entryTitle, summary: summary, keys: keys}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return components.Hints(s.keys.Select, s.keys.Back)
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && key.Matches(kmsg, s.keys.Select) {
		return s, router.Pop()
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	sum := s.summary
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(center.Render(theme.Title.Render(s.entryTitle)))
	b.WriteString("\n\n")

	if sum.TimedOut {
		b.WriteString(center.Render(theme.Warning.Render("Time ran out. Unanswered questions count as incorrect.")))
	} else {
		b.WriteString(center.Render(theme.Subtitle.Render("Test submitted")))
	}
	b.WriteString("\n\n")

	rows := []struct{ label, value string }{
		{"Correct", theme.Correct.Render(fmt.Sprintf("%d / %d", sum.Correct, sum.Total()))},
		{"Incorrect", theme.Incorrect.Render(fmt.Sprintf("%d", sum.Incorrect))},
		{"Accuracy", fmt.Sprintf("%d%%", sum.AccuracyPercent)},
		{"Time taken", FormatSeconds(sum.TimeTakenSeconds)},
		{"Speed", fmt.Sprintf("%.2f correct/min", sum.SpeedPerMinute)},
	}
	var card strings.Builder
	for _, r := range rows {
		card.WriteString(fmt.Sprintf("%-12s %s\n", theme.Subtitle.Render(r.label), r.value))
	}
	card.WriteString("\n" + components.NewProgressBar("", sum.AccuracyPercent, true, 36).View())

	b.WriteString(center.Render(theme.Card.Render(card.String())))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

// FormatSeconds renders a duration in seconds as m:ss.
func FormatSeconds(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
