package progress

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnpad/internal/content"
	"github.com/abhisek/learnpad/internal/mastery"
	"github.com/abhisek/learnpad/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func fractions(t *testing.T) *content.Topic {
	t.Helper()
	lib, err := content.Builtin()
	require.NoError(t, err)
	topic, ok := lib.Topic("fractions")
	require.True(t, ok)
	return topic
}

func TestLoadReplaysVisits(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	topic := fractions(t)

	visits := st.VisitRepo()
	require.NoError(t, visits.Record(ctx, topic.ID, "what-is-a-fraction", "lesson"))
	require.NoError(t, visits.Record(ctx, topic.ID, "what-is-a-fraction", "test"))
	require.NoError(t, visits.Record(ctx, topic.ID, "removed-entry", "lesson"))
	require.NoError(t, visits.Record(ctx, topic.ID, "same-denominator", "flashcards"))

	state, err := Load(ctx, visits, topic)
	require.NoError(t, err)

	got := state.Visited("what-is-a-fraction")
	assert.True(t, got.Has(mastery.ActivityLesson))
	assert.True(t, got.Has(mastery.ActivityTest))
	assert.False(t, got.Has(mastery.ActivityQuiz))
	assert.Equal(t, 0, state.Visited("same-denominator").Len())

	// 2 of 3 entries x 3 activities
	assert.Equal(t, 22, state.Percentage())
}

func TestLoadWithoutRepo(t *testing.T) {
	state, err := Load(context.Background(), nil, fractions(t))
	require.NoError(t, err)
	assert.Equal(t, 0, state.Percentage())
	assert.Equal(t, 3, state.EntryCount())
}

func TestReplayErrors(t *testing.T) {
	state := mastery.NewState([]mastery.SubUnit{{Entries: []mastery.Entry{{ID: "a"}}}})

	assert.ErrorIs(t, Replay(state, "b", "lesson"), mastery.ErrUnknownEntry)
	assert.ErrorIs(t, Replay(state, "a", "video"), mastery.ErrUnknownActivity)
	assert.NoError(t, Replay(state, "a", "quiz"))
}

func TestPercentages(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	lib, err := content.Builtin()
	require.NoError(t, err)

	require.NoError(t, st.VisitRepo().Record(ctx, "fractions", "what-is-a-fraction", "lesson"))

	got, err := Percentages(ctx, st.VisitRepo(), lib)
	require.NoError(t, err)
	assert.Len(t, got, len(lib.Topics()))
	assert.Equal(t, 11, got["fractions"])
}
