package topic

import (
	"github.com/abhisek/learnpad/internal/mastery"
	"github.com/abhisek/learnpad/internal/store"
)

// loadedMsg carries the replayed mastery state and best scores.
type loadedMsg struct {
	State *mastery.State
	Best  map[string]*store.Attempt
	Err   error
}

// bestLoadedMsg refreshes best scores after a test.
type bestLoadedMsg struct {
	Best map[string]*store.Attempt
}
