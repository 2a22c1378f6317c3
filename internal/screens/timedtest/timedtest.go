// Package timedtest is the screen that runs one timed test.
package timedtest

import (
	"context"
	"errors"
	"log"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnpad/internal/assessment"
	"github.com/abhisek/learnpad/internal/router"
	"github.com/abhisek/learnpad/internal/screen"
	"github.com/abhisek/learnpad/internal/screens/results"
	"github.com/abhisek/learnpad/internal/store"
	"github.com/abhisek/learnpad/internal/ui/components"
	"github.com/abhisek/learnpad/internal/ui/layout"
)

// Completion is told once when a test is submitted.
type Completion interface {
	TestCompleted(entryID string, summary assessment.ScoreSummary) tea.Cmd
}

// Options describe the test to run.
type Options struct {
	TopicID    string
	EntryID    string
	EntryTitle string
	Questions  []assessment.Question

	Attempts store.AttemptRepo
	Done     Completion
}

// TestScreen drives an assessment session from key presses and a one-second
// tick chain.
type TestScreen struct {
	opts    Options
	session *assessment.Session
	err     error
	options components.OptionList
	keys    components.KeyMap
	ticking bool
}

var _ screen.Screen = (*TestScreen)(nil)
var _ screen.KeyHintProvider = (*TestScreen)(nil)
var _ screen.StatusProvider = (*TestScreen)(nil)
var _ screen.Leaver = (*TestScreen)(nil)

// New creates a TestScreen. An empty question list yields a screen that
// shows a placeholder instead of starting a session.
func New(opts Options) *TestScreen {
	s := &TestScreen{opts: opts, keys: components.DefaultKeys()}
	sess, err := assessment.New(opts.Questions)
	if err != nil {
		s.err = err
		return s
	}
	s.session = sess
	s.resetOptions()
	return s
}

func (s *TestScreen) Init() tea.Cmd {
	if s.session == nil {
		return nil
	}
	s.ticking = true
	return tickCmd(s.session.ID())
}

func (s *TestScreen) Title() string {
	return s.opts.EntryTitle
}

// Status shows the countdown.
func (s *TestScreen) Status() string {
	if s.session == nil {
		return ""
	}
	return "⏱ " + results.FormatSeconds(s.session.TimeRemaining())
}

// Leave stops the countdown when the screen is removed.
func (s *TestScreen) Leave() {
	s.ticking = false
}

func (s *TestScreen) KeyHints() []layout.KeyHint {
	if s.session == nil {
		return components.Hints(s.keys.Back)
	}
	s.syncKeys()
	return components.Hints(s.keys.Up, s.keys.Down, s.keys.Select, s.keys.Prev, s.keys.Next, s.keys.Submit)
}

func (s *TestScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.session == nil {
		return s, nil
	}

	switch msg := msg.(type) {
	case tickMsg:
		return s, s.handleTick(msg)
	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *TestScreen) handleTick(msg tickMsg) tea.Cmd {
	if !s.ticking || msg.SessionID != s.session.ID() {
		return nil
	}
	if err := s.session.Tick(); err != nil {
		log.Printf("timedtest: tick: %v", err)
		s.ticking = false
		return nil
	}
	if s.session.Phase() == assessment.PhaseSubmitted {
		return s.finish()
	}
	return tickCmd(s.session.ID())
}

// stage hands the option under the cursor to the session while the same
// question is still current.
func (s *TestScreen) stage(msg tea.KeyPressMsg) {
	s.options, _ = s.options.Update(msg)
	if s.options.Staged == "" {
		return
	}
	if err := s.session.SelectAnswer(s.options.Staged); err != nil {
		log.Printf("timedtest: select answer: %v", err)
	}
}

func (s *TestScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if s.session.Phase() != assessment.PhaseInProgress {
		return nil
	}
	s.syncKeys()

	switch {
	case key.Matches(msg, s.keys.Next):
		return s.step(s.session.Advance)
	case key.Matches(msg, s.keys.Submit):
		return s.step(s.session.Submit)
	case key.Matches(msg, s.keys.Prev):
		return s.step(s.session.GoBack)
	case key.Matches(msg, s.keys.Select):
		s.stage(msg)
		return nil
	}

	var cmd tea.Cmd
	s.options, cmd = s.options.Update(msg)
	return cmd
}

// step runs one navigation operation and refreshes the option list, or
// finishes the test when the operation submitted it.
func (s *TestScreen) step(op func() error) tea.Cmd {
	if err := op(); err != nil {
		if !errors.Is(err, assessment.ErrNoAnswerSelected) {
			log.Printf("timedtest: %v", err)
		}
		return nil
	}
	if s.session.Phase() == assessment.PhaseSubmitted {
		return s.finish()
	}
	s.resetOptions()
	return nil
}

// finish stops the countdown, stores the attempt, reports completion and
// swaps this screen for the results.
func (s *TestScreen) finish() tea.Cmd {
	s.ticking = false
	sum, ok := s.session.Summary()
	if !ok {
		return nil
	}

	cmds := []tea.Cmd{s.saveAttempt(sum)}
	if s.opts.Done != nil {
		cmds = append(cmds, s.opts.Done.TestCompleted(s.opts.EntryID, sum))
	}
	cmds = append(cmds, router.Replace(results.New(s.opts.EntryTitle, sum)))
	return tea.Batch(cmds...)
}

func (s *TestScreen) saveAttempt(sum assessment.ScoreSummary) tea.Cmd {
	repo := s.opts.Attempts
	if repo == nil {
		return nil
	}
	a := &store.Attempt{
		TopicID:          s.opts.TopicID,
		EntryID:          s.opts.EntryID,
		Correct:          sum.Correct,
		Incorrect:        sum.Incorrect,
		AccuracyPercent:  sum.AccuracyPercent,
		TimeTakenSeconds: sum.TimeTakenSeconds,
		SpeedPerMinute:   sum.SpeedPerMinute,
		TimedOut:         sum.TimedOut,
	}
	return func() tea.Msg {
		if err := repo.Save(context.Background(), a); err != nil {
			log.Printf("timedtest: save attempt: %v", err)
		}
		return nil
	}
}

func (s *TestScreen) resetOptions() {
	s.options = components.NewOptionList(s.session.Current().SortedOptions(), s.session.Tentative())
}

// syncKeys enables only the controls the session currently accepts.
func (s *TestScreen) syncKeys() {
	inProgress := s.session.Phase() == assessment.PhaseInProgress
	staged := s.session.Tentative() != ""
	last := s.session.IsLast()

	s.keys.Next.SetEnabled(inProgress && staged)
	s.keys.Submit.SetEnabled(inProgress && staged && last)
	if last {
		s.keys.Next.SetHelp("→/n", "Finish")
	} else {
		s.keys.Next.SetHelp("→/n", "Next")
	}
	s.keys.Prev.SetEnabled(inProgress && s.session.CurrentIndex() > 0)
}
