package mastery

import "fmt"

// Activity is one of the three things a learner can do with an entry.
type Activity string

const (
	ActivityLesson Activity = "lesson"
	ActivityQuiz   Activity = "quiz"
	ActivityTest   Activity = "test"
)

// Activities lists every activity kind in display order.
var Activities = []Activity{ActivityLesson, ActivityQuiz, ActivityTest}

// ActivitiesPerEntry is the number of activity kinds counted per entry.
const ActivitiesPerEntry = 3

// Valid reports whether a is a known activity kind.
func (a Activity) Valid() bool {
	switch a {
	case ActivityLesson, ActivityQuiz, ActivityTest:
		return true
	}
	return false
}

// DisplayName returns the tab label for the activity.
func (a Activity) DisplayName() string {
	switch a {
	case ActivityLesson:
		return "Lesson"
	case ActivityQuiz:
		return "Quick Quiz"
	case ActivityTest:
		return "Timed Test"
	default:
		return string(a)
	}
}

// ParseActivity converts a stored activity name back to an Activity.
func ParseActivity(s string) (Activity, error) {
	a := Activity(s)
	if !a.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownActivity, s)
	}
	return a, nil
}

// ActivitySet is the set of activities visited for one entry.
type ActivitySet map[Activity]bool

// Has reports whether a is in the set.
func (s ActivitySet) Has(a Activity) bool { return s[a] }

// Len returns the number of visited activities.
func (s ActivitySet) Len() int { return len(s) }
