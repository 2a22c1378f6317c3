package assessment

import "errors"

var (
	// ErrEmptyQuestionSet is returned when a session is started without questions.
	ErrEmptyQuestionSet = errors.New("assessment: empty question set")

	// ErrInvalidPhase is returned when an operation is not valid in the
	// session's current phase or position.
	ErrInvalidPhase = errors.New("assessment: invalid phase")

	// ErrNoAnswerSelected is returned by Advance and Submit when no option
	// has been staged for the current question.
	ErrNoAnswerSelected = errors.New("assessment: no answer selected")
)
