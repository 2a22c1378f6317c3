package content

import (
	"github.com/abhisek/learnpad/internal/assessment"
	"github.com/abhisek/learnpad/internal/mastery"
)

// TestQuestions returns the entry's timed test as runner questions. It is
// empty when the entry has no test yet.
func (e *Entry) TestQuestions() []assessment.Question {
	if e.TimedTest == nil {
		return nil
	}
	return toQuestions(e.TimedTest.Questions)
}

// QuizQuestions returns the entry's quick quiz questions.
func (e *Entry) QuizQuestions() []assessment.Question {
	if e.Quiz == nil {
		return nil
	}
	return toQuestions(e.Quiz.Questions)
}

func toQuestions(data []QuestionData) []assessment.Question {
	out := make([]assessment.Question, len(data))
	for i, q := range data {
		out[i] = assessment.Question{
			Index:         i,
			Prompt:        q.Prompt,
			Options:       append([]string(nil), q.Options...),
			CorrectAnswer: q.Answer,
		}
	}
	return out
}

// ToMasteryTree returns the topic structure the mastery aggregator tracks.
func ToMasteryTree(t *Topic) []mastery.SubUnit {
	out := make([]mastery.SubUnit, len(t.SubUnits))
	for i, su := range t.SubUnits {
		entries := make([]mastery.Entry, len(su.Entries))
		for j, e := range su.Entries {
			entries[j] = mastery.Entry{ID: e.ID, Title: e.Title}
		}
		out[i] = mastery.SubUnit{Heading: su.Heading, Entries: entries}
	}
	return out
}
