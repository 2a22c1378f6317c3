package mastery

import "errors"

var (
	// ErrUnknownEntry is returned when an entry id is not part of the topic.
	ErrUnknownEntry = errors.New("mastery: unknown entry")

	// ErrUnknownActivity is returned for activity kinds other than lesson,
	// quiz and test.
	ErrUnknownActivity = errors.New("mastery: unknown activity")
)
