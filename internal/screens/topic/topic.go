// Package topic is the screen for one topic: its entries, lessons, quizzes
// and timed tests, plus the topic's mastery.
package topic

import (
	"context"
	"errors"
	"log"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnpad/internal/assessment"
	"github.com/abhisek/learnpad/internal/content"
	"github.com/abhisek/learnpad/internal/mastery"
	"github.com/abhisek/learnpad/internal/progress"
	"github.com/abhisek/learnpad/internal/router"
	"github.com/abhisek/learnpad/internal/screen"
	"github.com/abhisek/learnpad/internal/screens/quiz"
	"github.com/abhisek/learnpad/internal/screens/timedtest"
	"github.com/abhisek/learnpad/internal/store"
	"github.com/abhisek/learnpad/internal/ui/components"
	"github.com/abhisek/learnpad/internal/ui/layout"
)

type pane int

const (
	paneEntries pane = iota
	paneContent
)

const (
	tabLesson = iota
	tabQuiz
	tabTest
)

// TopicScreen shows a topic's entries on the left and the selected entry's
// lesson, quiz and timed test on the right.
type TopicScreen struct {
	topic    *content.Topic
	visits   store.VisitRepo
	attempts store.AttemptRepo

	state   *mastery.State
	best    map[string]*store.Attempt
	loadErr error

	entries  []*content.Entry
	cursor   int
	selected *content.Entry
	latched  bool

	focus    pane
	tabs     components.Tabs
	viewport viewport.Model
	keys     components.KeyMap
}

var _ screen.Screen = (*TopicScreen)(nil)
var _ screen.KeyHintProvider = (*TopicScreen)(nil)
var _ screen.StatusProvider = (*TopicScreen)(nil)
var _ screen.Resumer = (*TopicScreen)(nil)
var _ timedtest.Completion = (*TopicScreen)(nil)

// New creates a TopicScreen. The repos may be nil, in which case progress is
// kept in memory only.
func New(topic *content.Topic, visits store.VisitRepo, attempts store.AttemptRepo) *TopicScreen {
	s := &TopicScreen{
		topic:    topic,
		visits:   visits,
		attempts: attempts,
		tabs: components.Tabs{Labels: []string{
			mastery.ActivityLesson.DisplayName(),
			mastery.ActivityQuiz.DisplayName(),
			mastery.ActivityTest.DisplayName(),
		}},
		viewport: viewport.New(),
		keys:     components.DefaultKeys(),
	}
	for _, su := range topic.SubUnits {
		for i := range su.Entries {
			s.entries = append(s.entries, &su.Entries[i])
		}
	}
	s.keys.Next.SetHelp("→", "Content")
	s.keys.Prev.SetHelp("←", "Entries")
	return s
}

func (s *TopicScreen) Init() tea.Cmd {
	return s.load()
}

func (s *TopicScreen) Title() string {
	return s.topic.Title
}

// Status shows the topic's mastery once loaded.
func (s *TopicScreen) Status() string {
	if s.state == nil {
		return ""
	}
	return masteryLabel(s.state.Percentage())
}

// Resume refreshes best scores when returning from a test.
func (s *TopicScreen) Resume() tea.Cmd {
	return s.loadBest()
}

// TestCompleted marks the entry's test as visited.
func (s *TopicScreen) TestCompleted(entryID string, _ assessment.ScoreSummary) tea.Cmd {
	return s.markVisited(entryID, mastery.ActivityTest)
}

func (s *TopicScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		return s, s.handleLoaded(msg)
	case bestLoadedMsg:
		s.best = msg.Best
		return s, nil
	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *TopicScreen) load() tea.Cmd {
	topic, visits, attempts := s.topic, s.visits, s.attempts
	return func() tea.Msg {
		ctx := context.Background()
		state, err := progress.Load(ctx, visits, topic)
		if err != nil {
			return loadedMsg{Err: err}
		}
		return loadedMsg{State: state, Best: bestScores(ctx, attempts, topic)}
	}
}

func (s *TopicScreen) loadBest() tea.Cmd {
	if s.attempts == nil {
		return nil
	}
	topic, attempts := s.topic, s.attempts
	return func() tea.Msg {
		return bestLoadedMsg{Best: bestScores(context.Background(), attempts, topic)}
	}
}

func bestScores(ctx context.Context, attempts store.AttemptRepo, topic *content.Topic) map[string]*store.Attempt {
	best := make(map[string]*store.Attempt)
	if attempts == nil {
		return best
	}
	for _, su := range topic.SubUnits {
		for _, e := range su.Entries {
			a, err := attempts.Best(ctx, topic.ID, e.ID)
			if err != nil {
				log.Printf("topic: best attempt for %s/%s: %v", topic.ID, e.ID, err)
				continue
			}
			if a != nil {
				best[e.ID] = a
			}
		}
	}
	return best
}

func (s *TopicScreen) handleLoaded(msg loadedMsg) tea.Cmd {
	if msg.Err != nil {
		s.loadErr = msg.Err
		return nil
	}
	s.state = msg.State
	s.best = msg.Best

	if s.latched {
		return nil
	}
	s.latched = true
	id, ok := mastery.SelectDefaultEntry(s.state.SubUnits())
	if !ok {
		return nil
	}
	for i, e := range s.entries {
		if e.ID == id {
			s.cursor = i
			return s.open(e)
		}
	}
	return nil
}

func (s *TopicScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if s.state == nil {
		return nil
	}

	if s.selected != nil {
		switch {
		case key.Matches(msg, s.keys.NextTab):
			s.tabs.Next()
			return s.activateTab()
		case key.Matches(msg, s.keys.PrevTab):
			s.tabs.Prev()
			return s.activateTab()
		}
	}

	if s.focus == paneEntries {
		return s.handleEntriesKey(msg)
	}
	return s.handleContentKey(msg)
}

func (s *TopicScreen) handleEntriesKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(msg, s.keys.Down):
		if s.cursor < len(s.entries)-1 {
			s.cursor++
		}
	case key.Matches(msg, s.keys.Select):
		if len(s.entries) == 0 {
			return nil
		}
		s.focus = paneContent
		if e := s.entries[s.cursor]; e != s.selected {
			return s.open(e)
		}
	case key.Matches(msg, s.keys.Next):
		if s.selected != nil {
			s.focus = paneContent
		}
	}
	return nil
}

func (s *TopicScreen) handleContentKey(msg tea.KeyPressMsg) tea.Cmd {
	if key.Matches(msg, s.keys.Prev) {
		s.focus = paneEntries
		return nil
	}

	switch s.tabs.Active {
	case tabLesson:
		var cmd tea.Cmd
		s.viewport, cmd = s.viewport.Update(msg)
		return cmd
	case tabQuiz:
		if key.Matches(msg, s.keys.Select) {
			return router.Push(quiz.New(s.selected.Title, s.selected.QuizQuestions()))
		}
	case tabTest:
		if key.Matches(msg, s.keys.Select) {
			return router.Push(timedtest.New(timedtest.Options{
				TopicID:    s.topic.ID,
				EntryID:    s.selected.ID,
				EntryTitle: s.selected.Title,
				Questions:  s.selected.TestQuestions(),
				Attempts:   s.attempts,
				Done:       s,
			}))
		}
	}
	return nil
}

// open selects e and shows its lesson.
func (s *TopicScreen) open(e *content.Entry) tea.Cmd {
	s.selected = e
	s.tabs.Active = tabLesson
	s.viewport.GotoTop()
	return s.activateTab()
}

// activateTab records a visit for the lesson and quiz tabs when the entry
// has something to show there. Tests are recorded on completion.
func (s *TopicScreen) activateTab() tea.Cmd {
	e := s.selected
	if e == nil {
		return nil
	}
	switch s.tabs.Active {
	case tabLesson:
		if e.HasLesson() {
			return s.markVisited(e.ID, mastery.ActivityLesson)
		}
	case tabQuiz:
		if len(e.QuizQuestions()) > 0 {
			return s.markVisited(e.ID, mastery.ActivityQuiz)
		}
	}
	return nil
}

func (s *TopicScreen) markVisited(entryID string, a mastery.Activity) tea.Cmd {
	if s.state == nil {
		return nil
	}
	seen := s.state.Visited(entryID).Has(a)
	if err := s.state.MarkVisited(entryID, a); err != nil {
		if errors.Is(err, mastery.ErrUnknownEntry) {
			log.Printf("topic %s: dropping visit: %v", s.topic.ID, err)
			return nil
		}
		log.Printf("topic %s: mark visited: %v", s.topic.ID, err)
		return nil
	}
	if seen || s.visits == nil {
		return nil
	}

	visits, topicID := s.visits, s.topic.ID
	return func() tea.Msg {
		if err := visits.Record(context.Background(), topicID, entryID, string(a)); err != nil {
			log.Printf("topic %s: record visit: %v", topicID, err)
		}
		return nil
	}
}

func (s *TopicScreen) KeyHints() []layout.KeyHint {
	if s.state == nil {
		return components.Hints(s.keys.Back)
	}
	if s.focus == paneEntries {
		return components.Hints(s.keys.Up, s.keys.Down, s.keys.Select, s.keys.NextTab, s.keys.Back)
	}

	hints := components.Hints(s.keys.Prev, s.keys.NextTab)
	switch s.tabs.Active {
	case tabLesson:
		hints = append(hints, layout.KeyHint{Key: "↑↓", Description: "Scroll"})
	case tabQuiz, tabTest:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Start"})
	}
	return append(hints, components.Hints(s.keys.Back)...)
}
