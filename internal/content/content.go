// Package content loads topic documents: sub-units of entries, each with an
// optional lesson, quick quiz and timed test.
package content

// Topic is one learnable subject.
type Topic struct {
	ID          string    `json:"id" validate:"required,slug"`
	Title       string    `json:"title" validate:"notblank"`
	Description string    `json:"description,omitempty"`
	SubUnits    []SubUnit `json:"subUnits" validate:"dive"`
}

// SubUnit groups entries under a heading.
type SubUnit struct {
	Heading string  `json:"heading" validate:"notblank"`
	Entries []Entry `json:"entries" validate:"dive"`
}

// Entry is the smallest addressable piece of content.
type Entry struct {
	ID        string     `json:"id" validate:"required,slug"`
	Title     string     `json:"title" validate:"notblank"`
	Lesson    *Lesson    `json:"lesson,omitempty"`
	Quiz      *Quiz      `json:"quiz,omitempty"`
	TimedTest *TimedTest `json:"timedTest,omitempty"`
}

// Lesson is the reading material for an entry.
type Lesson struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body" validate:"notblank"`
}

// Quiz is an untimed practice set.
type Quiz struct {
	Questions []QuestionData `json:"questions" validate:"dive"`
}

// TimedTest is the question set handed to the assessment runner. An empty
// list is allowed and means the test is not available yet.
type TimedTest struct {
	Questions []QuestionData `json:"questions" validate:"dive"`
}

// QuestionData is a multiple-choice question as stored in content files.
// Answer must be one of Options.
type QuestionData struct {
	Prompt  string   `json:"prompt" validate:"notblank"`
	Options []string `json:"options" validate:"min=2,unique,dive,notblank"`
	Answer  string   `json:"answer" validate:"required"`
}

// EntryCount returns the number of entries across all sub-units.
func (t *Topic) EntryCount() int {
	n := 0
	for _, su := range t.SubUnits {
		n += len(su.Entries)
	}
	return n
}

// Entry finds an entry by id.
func (t *Topic) Entry(id string) (*Entry, bool) {
	for i := range t.SubUnits {
		for j := range t.SubUnits[i].Entries {
			if e := &t.SubUnits[i].Entries[j]; e.ID == id {
				return e, true
			}
		}
	}
	return nil, false
}

// HasLesson reports whether the entry has reading material.
func (e *Entry) HasLesson() bool { return e.Lesson != nil && e.Lesson.Body != "" }
