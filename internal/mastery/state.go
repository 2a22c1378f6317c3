package mastery

import (
	"fmt"
	"math"
)

// Entry is the smallest addressable unit of learning content in a topic.
type Entry struct {
	ID    string
	Title string
}

// SubUnit is an ordered group of entries under a heading.
type SubUnit struct {
	Heading string
	Entries []Entry
}

// State tracks which activities have been visited for every entry of one
// topic. Visited activities are never removed for the lifetime of a State.
type State struct {
	subUnits []SubUnit
	visited  map[string]ActivitySet
	entries  int
}

// NewState builds a State for the given topic structure with nothing visited.
func NewState(subUnits []SubUnit) *State {
	s := &State{
		subUnits: make([]SubUnit, len(subUnits)),
		visited:  make(map[string]ActivitySet),
	}
	for i, su := range subUnits {
		entries := make([]Entry, len(su.Entries))
		copy(entries, su.Entries)
		s.subUnits[i] = SubUnit{Heading: su.Heading, Entries: entries}

		for _, e := range entries {
			if _, dup := s.visited[e.ID]; dup {
				continue
			}
			s.visited[e.ID] = make(ActivitySet)
			s.entries++
		}
	}
	return s
}

// SubUnits returns the topic structure the state was built from.
func (s *State) SubUnits() []SubUnit { return s.subUnits }

// EntryCount returns the number of distinct entries in the topic.
func (s *State) EntryCount() int { return s.entries }

// Has reports whether entryID belongs to the topic.
func (s *State) Has(entryID string) bool {
	_, ok := s.visited[entryID]
	return ok
}

// MarkVisited records that activity was visited for entryID. Marking an
// activity twice has no further effect.
func (s *State) MarkVisited(entryID string, activity Activity) error {
	if !activity.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownActivity, activity)
	}
	set, ok := s.visited[entryID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEntry, entryID)
	}
	set[activity] = true
	return nil
}

// Visited returns a copy of the visited activities for entryID.
func (s *State) Visited(entryID string) ActivitySet {
	out := make(ActivitySet)
	for a := range s.visited[entryID] {
		out[a] = true
	}
	return out
}

// Percentage returns the topic's mastery percentage: visited activities over
// all possible activities, rounded to the nearest integer. A topic without
// entries is 0%.
func (s *State) Percentage() int {
	total := 0
	for _, set := range s.visited {
		total += set.Len()
	}
	return percent(total, s.entries)
}

// SubUnitPercentage returns the mastery percentage of one sub-unit.
func (s *State) SubUnitPercentage(i int) int {
	if i < 0 || i >= len(s.subUnits) {
		return 0
	}
	total := 0
	entries := s.subUnits[i].Entries
	for _, e := range entries {
		total += s.visited[e.ID].Len()
	}
	return percent(total, len(entries))
}

func percent(visited, entries int) int {
	if entries == 0 {
		return 0
	}
	return int(math.Round(100 * float64(visited) / float64(ActivitiesPerEntry*entries)))
}

// SelectDefaultEntry returns the first entry of the first sub-unit, used to
// seed the selection when a topic is opened. It reports false when there is
// no such entry.
func SelectDefaultEntry(subUnits []SubUnit) (string, bool) {
	if len(subUnits) == 0 || len(subUnits[0].Entries) == 0 {
		return "", false
	}
	return subUnits[0].Entries[0].ID, true
}
