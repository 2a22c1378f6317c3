package store

import (
	"context"
	"time"
)

// QueryOpts configures list queries.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	After int64     // sequence > After
	From  time.Time // created_at >= From
}

// Attempt is one completed timed test.
type Attempt struct {
	ID               string    `db:"id"`
	Sequence         int64     `db:"sequence"`
	TopicID          string    `db:"topic_id"`
	EntryID          string    `db:"entry_id"`
	Correct          int       `db:"correct"`
	Incorrect        int       `db:"incorrect"`
	AccuracyPercent  int       `db:"accuracy_percent"`
	TimeTakenSeconds int       `db:"time_taken_seconds"`
	SpeedPerMinute   float64   `db:"speed_per_minute"`
	TimedOut         bool      `db:"timed_out"`
	CreatedAt        time.Time `db:"-"`
}

// AttemptRepo stores timed-test results.
type AttemptRepo interface {
	// Save stores a new attempt. ID and Sequence are assigned when empty.
	Save(ctx context.Context, a *Attempt) error

	// ListByTopic returns attempts for a topic, newest first. An empty topic
	// ID lists every topic.
	ListByTopic(ctx context.Context, topicID string, opts QueryOpts) ([]Attempt, error)

	// Best returns the highest-accuracy attempt for an entry, or nil.
	Best(ctx context.Context, topicID, entryID string) (*Attempt, error)
}

// Visit records that a learner opened one activity of an entry.
type Visit struct {
	TopicID   string    `db:"topic_id"`
	EntryID   string    `db:"entry_id"`
	Activity  string    `db:"activity"`
	Sequence  int64     `db:"sequence"`
	CreatedAt time.Time `db:"-"`
}

// VisitRepo stores activity visits. Recording the same visit twice keeps the
// first row.
type VisitRepo interface {
	Record(ctx context.Context, topicID, entryID, activity string) error

	// ListByTopic returns visits for a topic in the order they happened.
	ListByTopic(ctx context.Context, topicID string) ([]Visit, error)
}

// LLMCall captures a single LLM request.
type LLMCall struct {
	ID           int64     `db:"id"`
	Sequence     int64     `db:"sequence"`
	Provider     string    `db:"provider"`
	Model        string    `db:"model"`
	Purpose      string    `db:"purpose"`
	InputTokens  int       `db:"input_tokens"`
	OutputTokens int       `db:"output_tokens"`
	LatencyMs    int64     `db:"latency_ms"`
	Success      bool      `db:"success"`
	ErrorMessage string    `db:"error_message"`
	RequestBody  string    `db:"request_body"`
	ResponseBody string    `db:"response_body"`
	Timestamp    time.Time `db:"-"`
}

// PurposeUsage aggregates token usage for one purpose and model.
type PurposeUsage struct {
	Purpose      string `db:"purpose"`
	Model        string `db:"model"`
	Calls        int    `db:"calls"`
	Failures     int    `db:"failures"`
	InputTokens  int    `db:"input_tokens"`
	OutputTokens int    `db:"output_tokens"`
}

// LLMCallRepo is the append-only LLM call log.
type LLMCallRepo interface {
	Append(ctx context.Context, call LLMCall) error

	// Query returns calls newest first.
	Query(ctx context.Context, opts QueryOpts) ([]LLMCall, error)

	// Get returns one call by id, or nil if it does not exist.
	Get(ctx context.Context, id int64) (*LLMCall, error)

	// UsageByPurpose sums tokens per purpose and model.
	UsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
}
