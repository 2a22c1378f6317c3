package assessment

import "sort"

// Question is a single multiple-choice item in a timed test.
type Question struct {
	// Index is the ordinal position of the question within its test.
	Index int

	// Prompt is the question text shown to the learner.
	Prompt string

	// Options are the answer choices as supplied by the content source.
	// Callers are expected to deduplicate them.
	Options []string

	// CorrectAnswer is the text of the option that scores as correct.
	CorrectAnswer string
}

// SortedOptions returns a copy of the options in display order.
func (q Question) SortedOptions() []string {
	out := make([]string, len(q.Options))
	copy(out, q.Options)
	sort.Strings(out)
	return out
}

// IsCorrect reports whether answer exactly matches the correct option.
// An empty answer never matches.
func (q Question) IsCorrect(answer string) bool {
	return answer != "" && answer == q.CorrectAnswer
}
