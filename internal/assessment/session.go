package assessment

import "github.com/google/uuid"

// SecondsPerQuestion is the time budget granted for each question.
const SecondsPerQuestion = 60

// Phase is the lifecycle phase of a session.
type Phase int

const (
	PhaseInProgress Phase = iota // Accepting answers and ticks
	PhaseSubmitted               // Terminal; summary is available
)

func (p Phase) String() string {
	if p == PhaseSubmitted {
		return "submitted"
	}
	return "in-progress"
}

// Session is one timed attempt at a fixed, ordered list of questions.
//
// Answers are staged in two steps: SelectAnswer sets the tentative choice for
// the current question, and Advance, GoBack or Submit commit it. Sessions are
// not safe for concurrent use; the owner drives them from a single loop.
type Session struct {
	id        string
	questions []Question
	current   int
	answers   map[int]string
	tentative string
	budget    int
	remaining int
	phase     Phase
	summary   *ScoreSummary
}

// New starts a session over questions with a budget of one minute per
// question. It returns ErrEmptyQuestionSet when questions is empty.
func New(questions []Question) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyQuestionSet
	}

	qs := make([]Question, len(questions))
	for i, q := range questions {
		opts := make([]string, len(q.Options))
		copy(opts, q.Options)
		q.Options = opts
		qs[i] = q
	}

	budget := len(qs) * SecondsPerQuestion
	return &Session{
		id:        uuid.New().String(),
		questions: qs,
		answers:   make(map[int]string),
		budget:    budget,
		remaining: budget,
		phase:     PhaseInProgress,
	}, nil
}

// ID returns the unique identifier of this attempt.
func (s *Session) ID() string { return s.id }

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase { return s.phase }

// Len returns the number of questions.
func (s *Session) Len() int { return len(s.questions) }

// CurrentIndex returns the index of the question on screen. It is only
// meaningful while the session is in progress.
func (s *Session) CurrentIndex() int { return s.current }

// Current returns the question at the current index.
func (s *Session) Current() Question { return s.questions[s.current] }

// Question returns the question at index i.
func (s *Session) Question(i int) Question { return s.questions[i] }

// Tentative returns the staged, uncommitted choice for the current question.
func (s *Session) Tentative() string { return s.tentative }

// Answer returns the committed answer for question i, if any.
func (s *Session) Answer(i int) (string, bool) {
	a, ok := s.answers[i]
	return a, ok
}

// AnsweredCount returns the number of committed answers.
func (s *Session) AnsweredCount() int { return len(s.answers) }

// TimeBudget returns the total number of seconds granted for the session.
func (s *Session) TimeBudget() int { return s.budget }

// TimeRemaining returns the seconds left on the countdown.
func (s *Session) TimeRemaining() int { return s.remaining }

// IsLast reports whether the current question is the final one.
func (s *Session) IsLast() bool { return s.current == len(s.questions)-1 }

// Summary returns the score summary once the session is submitted.
func (s *Session) Summary() (ScoreSummary, bool) {
	if s.summary == nil {
		return ScoreSummary{}, false
	}
	return *s.summary, true
}

// SelectAnswer stages option as the tentative choice for the current question.
func (s *Session) SelectAnswer(option string) error {
	if s.phase != PhaseInProgress {
		return ErrInvalidPhase
	}
	s.tentative = option
	return nil
}

// Advance commits the tentative choice and moves to the next question. On the
// last question it submits the session and computes the score.
func (s *Session) Advance() error {
	if s.phase != PhaseInProgress {
		return ErrInvalidPhase
	}
	if s.tentative == "" {
		return ErrNoAnswerSelected
	}

	s.answers[s.current] = s.tentative
	if s.IsLast() {
		s.submit(false)
		return nil
	}

	s.current++
	s.tentative = s.answers[s.current]
	return nil
}

// Submit commits the tentative choice on the last question and submits the
// session. It is equivalent to Advance on the last question.
func (s *Session) Submit() error {
	if s.phase != PhaseInProgress || !s.IsLast() {
		return ErrInvalidPhase
	}
	return s.Advance()
}

// GoBack commits any tentative choice and steps back one question, restoring
// the previously committed answer there as the tentative choice.
func (s *Session) GoBack() error {
	if s.phase != PhaseInProgress || s.current == 0 {
		return ErrInvalidPhase
	}

	if s.tentative != "" {
		s.answers[s.current] = s.tentative
	}
	s.current--
	s.tentative = s.answers[s.current]
	return nil
}

// Tick consumes one second of the budget. When the countdown reaches zero the
// session is submitted with the answers committed so far.
func (s *Session) Tick() error {
	if s.phase != PhaseInProgress {
		return ErrInvalidPhase
	}

	if s.remaining > 0 {
		s.remaining--
	}
	if s.remaining == 0 {
		s.submit(true)
	}
	return nil
}

// submit moves the session to PhaseSubmitted and scores it. Only the first
// caller scores; later calls are no-ops.
func (s *Session) submit(timedOut bool) {
	if s.phase == PhaseSubmitted {
		return
	}
	s.phase = PhaseSubmitted
	s.tentative = ""

	sum := score(s.questions, s.answers, s.budget, s.remaining)
	sum.TimedOut = timedOut
	s.summary = &sum
}
