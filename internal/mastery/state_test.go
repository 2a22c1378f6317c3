package mastery

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleEntryUnits(n int) []SubUnit {
	units := make([]SubUnit, n)
	for i := range units {
		units[i] = SubUnit{
			Heading: fmt.Sprintf("Unit %d", i+1),
			Entries: []Entry{{ID: fmt.Sprintf("e%d", i+1)}},
		}
	}
	return units
}

func TestPercentage_LessonAndQuizOnTwoOfFive(t *testing.T) {
	s := NewState(singleEntryUnits(5))

	for _, id := range []string{"e1", "e3"} {
		require.NoError(t, s.MarkVisited(id, ActivityLesson))
		require.NoError(t, s.MarkVisited(id, ActivityQuiz))
	}

	assert.Equal(t, 27, s.Percentage())
}

func TestPercentage_ZeroEntries(t *testing.T) {
	assert.Equal(t, 0, NewState(nil).Percentage())
	assert.Equal(t, 0, NewState([]SubUnit{{Heading: "Empty"}}).Percentage())
}

func TestPercentage_AllVisited(t *testing.T) {
	s := NewState(singleEntryUnits(2))
	for _, id := range []string{"e1", "e2"} {
		for _, a := range Activities {
			require.NoError(t, s.MarkVisited(id, a))
		}
	}
	assert.Equal(t, 100, s.Percentage())
}

func TestMarkVisited_Idempotent(t *testing.T) {
	s := NewState(singleEntryUnits(3))

	require.NoError(t, s.MarkVisited("e2", ActivityTest))
	once := s.Percentage()
	require.NoError(t, s.MarkVisited("e2", ActivityTest))

	assert.Equal(t, once, s.Percentage())
	assert.Equal(t, 1, s.Visited("e2").Len())
}

func TestMarkVisited_UnknownEntry(t *testing.T) {
	s := NewState(singleEntryUnits(1))

	err := s.MarkVisited("missing", ActivityLesson)
	assert.True(t, errors.Is(err, ErrUnknownEntry))
	assert.Equal(t, 0, s.Percentage())
}

func TestMarkVisited_UnknownActivity(t *testing.T) {
	s := NewState(singleEntryUnits(1))

	err := s.MarkVisited("e1", Activity("flashcards"))
	assert.True(t, errors.Is(err, ErrUnknownActivity))
	assert.Equal(t, 0, s.Visited("e1").Len())
}

func TestVisited_ReturnsCopy(t *testing.T) {
	s := NewState(singleEntryUnits(1))
	require.NoError(t, s.MarkVisited("e1", ActivityLesson))

	v := s.Visited("e1")
	v[ActivityQuiz] = true

	assert.False(t, s.Visited("e1").Has(ActivityQuiz))
}

func TestNewState_CopiesStructure(t *testing.T) {
	units := singleEntryUnits(2)
	s := NewState(units)
	units[0].Entries[0].ID = "changed"

	assert.True(t, s.Has("e1"))
	assert.False(t, s.Has("changed"))
	assert.Equal(t, 2, s.EntryCount())
}

func TestNewState_DuplicateIDsCountOnce(t *testing.T) {
	s := NewState([]SubUnit{
		{Heading: "A", Entries: []Entry{{ID: "x"}}},
		{Heading: "B", Entries: []Entry{{ID: "x"}, {ID: "y"}}},
	})
	assert.Equal(t, 2, s.EntryCount())
}

func TestSubUnitPercentage(t *testing.T) {
	s := NewState([]SubUnit{
		{Heading: "A", Entries: []Entry{{ID: "a1"}, {ID: "a2"}}},
		{Heading: "B", Entries: []Entry{{ID: "b1"}}},
	})
	require.NoError(t, s.MarkVisited("a1", ActivityLesson))

	assert.Equal(t, 17, s.SubUnitPercentage(0))
	assert.Equal(t, 0, s.SubUnitPercentage(1))
	assert.Equal(t, 0, s.SubUnitPercentage(5))
}

func TestSelectDefaultEntry(t *testing.T) {
	tests := []struct {
		name   string
		units  []SubUnit
		wantID string
		wantOK bool
	}{
		{"no sub-units", nil, "", false},
		{"empty first sub-unit", []SubUnit{{Heading: "A"}, {Heading: "B", Entries: []Entry{{ID: "b1"}}}}, "", false},
		{"first entry", singleEntryUnits(3), "e1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := SelectDefaultEntry(tt.units)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestParseActivity(t *testing.T) {
	for _, a := range Activities {
		got, err := ParseActivity(string(a))
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	_, err := ParseActivity("exam")
	assert.ErrorIs(t, err, ErrUnknownActivity)
}
