package topic

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnpad/internal/assessment"
	"github.com/abhisek/learnpad/internal/content"
	"github.com/abhisek/learnpad/internal/mastery"
	"github.com/abhisek/learnpad/internal/router"
	"github.com/abhisek/learnpad/internal/screens/quiz"
	"github.com/abhisek/learnpad/internal/screens/timedtest"
	"github.com/abhisek/learnpad/internal/store"
)

type fakeVisits struct {
	stored   []store.Visit
	recorded []store.Visit
	err      error
}

func (f *fakeVisits) Record(_ context.Context, topicID, entryID, activity string) error {
	f.recorded = append(f.recorded, store.Visit{TopicID: topicID, EntryID: entryID, Activity: activity})
	return nil
}

func (f *fakeVisits) ListByTopic(context.Context, string) ([]store.Visit, error) {
	return f.stored, f.err
}

type fakeAttempts struct {
	best map[string]*store.Attempt
}

func (f *fakeAttempts) Save(context.Context, *store.Attempt) error { return nil }
func (f *fakeAttempts) ListByTopic(context.Context, string, store.QueryOpts) ([]store.Attempt, error) {
	return nil, nil
}
func (f *fakeAttempts) Best(_ context.Context, _, entryID string) (*store.Attempt, error) {
	return f.best[entryID], nil
}

func sampleTopic() *content.Topic {
	q := content.QuestionData{Prompt: "?", Options: []string{"a", "b"}, Answer: "a"}
	return &content.Topic{
		ID:    "fractions",
		Title: "Fractions",
		SubUnits: []content.SubUnit{
			{Heading: "Basics", Entries: []content.Entry{
				{
					ID:        "halves",
					Title:     "Halves",
					Lesson:    &content.Lesson{Body: "A half is one of two equal parts."},
					Quiz:      &content.Quiz{Questions: []content.QuestionData{q}},
					TimedTest: &content.TimedTest{Questions: []content.QuestionData{q, q}},
				},
				{ID: "thirds", Title: "Thirds"},
			}},
			{Heading: "More", Entries: []content.Entry{
				{ID: "quarters", Title: "Quarters", Lesson: &content.Lesson{Body: "Four parts."}},
			}},
		},
	}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func enter() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

func tab() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyTab}
}

// run executes cmd and expands batches.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func loaded(t *testing.T, visits *fakeVisits, attempts *fakeAttempts) *TopicScreen {
	t.Helper()
	var repo store.AttemptRepo
	if attempts != nil {
		repo = attempts
	}
	s := New(sampleTopic(), visits, repo)
	msg := s.Init()()
	_, cmd := s.Update(msg)
	run(cmd)
	return s
}

func TestLoadLatchesDefaultEntryAndMarksLesson(t *testing.T) {
	visits := &fakeVisits{}
	s := loaded(t, visits, &fakeAttempts{})

	if s.selected == nil || s.selected.ID != "halves" {
		t.Fatalf("expected the first entry selected, got %+v", s.selected)
	}
	if !s.state.Visited("halves").Has(mastery.ActivityLesson) {
		t.Error("expected the lesson to be marked visited")
	}
	if len(visits.recorded) != 1 || visits.recorded[0].Activity != "lesson" {
		t.Errorf("expected one recorded lesson visit, got %+v", visits.recorded)
	}
}

func TestDefaultEntryLatchedOnce(t *testing.T) {
	s := loaded(t, &fakeVisits{}, nil)

	s.Update(keyPress('j'))
	s.Update(enter())
	if s.selected.ID != "thirds" {
		t.Fatalf("expected thirds selected, got %q", s.selected.ID)
	}

	msg := s.load()()
	s.Update(msg)

	if s.selected.ID != "thirds" {
		t.Error("a reload must not reset the selection")
	}
}

func TestReplayDropsUnknownEntries(t *testing.T) {
	visits := &fakeVisits{stored: []store.Visit{
		{EntryID: "quarters", Activity: "lesson"},
		{EntryID: "gone", Activity: "quiz"},
	}}
	s := loaded(t, visits, nil)

	if !s.state.Visited("quarters").Has(mastery.ActivityLesson) {
		t.Error("expected the stored visit to be replayed")
	}
	// halves lesson + quarters lesson = 2 of 9
	if got := s.state.Percentage(); got != 22 {
		t.Errorf("expected 22%%, got %d", got)
	}
}

func TestLoadError(t *testing.T) {
	s := New(sampleTopic(), &fakeVisits{err: errors.New("boom")}, nil)
	s.Update(s.Init()())

	if s.loadErr == nil {
		t.Fatal("expected a load error")
	}
	if !strings.Contains(s.View(120, 30), "boom") {
		t.Error("expected the error in the view")
	}
}

func TestQuizTabMarksQuiz(t *testing.T) {
	visits := &fakeVisits{}
	s := loaded(t, visits, nil)

	_, cmd := s.Update(tab())
	run(cmd)

	if s.tabs.Active != tabQuiz {
		t.Fatalf("expected quiz tab, got %d", s.tabs.Active)
	}
	if !s.state.Visited("halves").Has(mastery.ActivityQuiz) {
		t.Error("expected the quiz to be marked visited")
	}
	if len(visits.recorded) != 2 {
		t.Errorf("expected two recorded visits, got %d", len(visits.recorded))
	}

	// a second activation records nothing new
	s.Update(tab())
	s.Update(tab())
	_, cmd = s.Update(tab())
	run(cmd)
	if len(visits.recorded) != 2 {
		t.Errorf("expected no duplicate records, got %d", len(visits.recorded))
	}
}

func TestTestTabDoesNotMarkUntilCompleted(t *testing.T) {
	visits := &fakeVisits{}
	s := loaded(t, visits, nil)

	s.Update(tab())
	s.Update(tab())
	if s.tabs.Active != tabTest {
		t.Fatalf("expected test tab, got %d", s.tabs.Active)
	}
	if s.state.Visited("halves").Has(mastery.ActivityTest) {
		t.Fatal("opening the tab must not mark the test")
	}

	run(s.TestCompleted("halves", assessment.ScoreSummary{Correct: 2}))

	if !s.state.Visited("halves").Has(mastery.ActivityTest) {
		t.Error("expected the test to be marked on completion")
	}
	last := visits.recorded[len(visits.recorded)-1]
	if last.Activity != "test" || last.EntryID != "halves" || last.TopicID != "fractions" {
		t.Errorf("unexpected record %+v", last)
	}
}

func TestCompletedForUnknownEntryIsDropped(t *testing.T) {
	visits := &fakeVisits{}
	s := loaded(t, visits, nil)
	before := len(visits.recorded)

	if cmd := s.TestCompleted("gone", assessment.ScoreSummary{}); cmd != nil {
		t.Error("expected no record command")
	}
	if len(visits.recorded) != before {
		t.Error("expected nothing recorded")
	}
}

func TestEnterOnTestTabPushesTest(t *testing.T) {
	s := loaded(t, &fakeVisits{}, nil)

	s.Update(enter())
	s.Update(tab())
	s.Update(tab())
	_, cmd := s.Update(enter())

	msgs := run(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(msgs))
	}
	push, ok := msgs[0].(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected a push, got %T", msgs[0])
	}
	if _, ok := push.Screen.(*timedtest.TestScreen); !ok {
		t.Errorf("expected the timed test screen, got %T", push.Screen)
	}
}

func TestEnterOnQuizTabPushesQuiz(t *testing.T) {
	s := loaded(t, &fakeVisits{}, nil)

	s.Update(enter())
	s.Update(tab())
	_, cmd := s.Update(enter())

	msgs := run(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(msgs))
	}
	push, ok := msgs[0].(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected a push, got %T", msgs[0])
	}
	if _, ok := push.Screen.(*quiz.QuizScreen); !ok {
		t.Errorf("expected the quiz screen, got %T", push.Screen)
	}
}

func TestEntryWithoutLessonNotMarked(t *testing.T) {
	visits := &fakeVisits{}
	s := loaded(t, visits, nil)

	s.Update(keyPress('j'))
	_, cmd := s.Update(enter())
	run(cmd)

	if s.state.Visited("thirds").Len() != 0 {
		t.Error("an empty lesson must not count as visited")
	}
	if !strings.Contains(s.View(120, 30), "No lesson") {
		t.Error("expected the empty lesson placeholder")
	}
}

func TestResumeRefreshesBest(t *testing.T) {
	attempts := &fakeAttempts{best: map[string]*store.Attempt{}}
	s := loaded(t, &fakeVisits{}, attempts)

	attempts.best["halves"] = &store.Attempt{AccuracyPercent: 50, Correct: 1, Incorrect: 1}
	s.Update(s.Resume()())

	if s.best["halves"] == nil {
		t.Fatal("expected best score refreshed")
	}
	s.Update(enter())
	s.Update(tab())
	s.Update(tab())
	if !strings.Contains(s.View(120, 30), "Best so far: 50%") {
		t.Error("expected the best score on the test tab")
	}
}

func TestViewShowsMastery(t *testing.T) {
	s := loaded(t, &fakeVisits{}, nil)

	out := s.View(120, 30)
	for _, want := range []string{"Basics", "Halves", "Quarters", "11%"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in view", want)
		}
	}
	if s.Status() != "Mastery 11%" {
		t.Errorf("unexpected status %q", s.Status())
	}
}
