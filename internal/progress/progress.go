// Package progress rebuilds per-topic mastery from the visit log.
package progress

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/abhisek/learnpad/internal/content"
	"github.com/abhisek/learnpad/internal/mastery"
	"github.com/abhisek/learnpad/internal/store"
)

// Load replays the stored visits of topic into a fresh mastery state.
// Visits for entries no longer in the topic, or with unknown activity names,
// are logged and skipped.
func Load(ctx context.Context, visits store.VisitRepo, topic *content.Topic) (*mastery.State, error) {
	state := mastery.NewState(content.ToMasteryTree(topic))
	if visits == nil {
		return state, nil
	}

	rows, err := visits.ListByTopic(ctx, topic.ID)
	if err != nil {
		return nil, fmt.Errorf("list visits for %s: %w", topic.ID, err)
	}

	for _, v := range rows {
		if err := Replay(state, v.EntryID, v.Activity); err != nil {
			log.Printf("progress: topic %s: dropping visit: %v", topic.ID, err)
		}
	}
	return state, nil
}

// Replay applies one persisted visit to state.
func Replay(state *mastery.State, entryID, activity string) error {
	a, err := mastery.ParseActivity(activity)
	if err != nil {
		return err
	}
	if err := state.MarkVisited(entryID, a); err != nil {
		if errors.Is(err, mastery.ErrUnknownEntry) {
			return fmt.Errorf("entry %q: %w", entryID, err)
		}
		return err
	}
	return nil
}

// Percentages returns the mastery percentage of every topic in lib, keyed by
// topic ID.
func Percentages(ctx context.Context, visits store.VisitRepo, lib *content.Library) (map[string]int, error) {
	out := make(map[string]int, len(lib.Topics()))
	for _, t := range lib.Topics() {
		state, err := Load(ctx, visits, t)
		if err != nil {
			return nil, err
		}
		out[t.ID] = state.Percentage()
	}
	return out, nil
}
