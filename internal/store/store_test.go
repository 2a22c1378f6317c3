package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
	if s.Dialect() != DialectSQLite {
		t.Fatalf("dialect = %q, want sqlite", s.Dialect())
	}
}

func TestDialectFor(t *testing.T) {
	tests := []struct {
		dsn  string
		want Dialect
	}{
		{"postgres://localhost:5432/learnpad", DialectPostgres},
		{"postgresql://u@db/learnpad?sslmode=disable", DialectPostgres},
		{"/tmp/learnpad.db", DialectSQLite},
		{"file::memory:?cache=shared", DialectSQLite},
	}
	for _, tt := range tests {
		if got := DialectFor(tt.dsn); got != tt.want {
			t.Errorf("DialectFor(%q) = %q, want %q", tt.dsn, got, tt.want)
		}
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		pragma string
		want   string
	}{
		// journal_mode stays "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		if err := s.DB().QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "learnpad.db")
	if err := EnsureDir(path); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.VisitRepo().Record(context.Background(), "t", "e", "lesson"); err != nil {
		t.Fatalf("record: %v", err)
	}
	s.Close()

	// Reopening keeps data and does not fail on existing schema.
	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	visits, err := s.VisitRepo().ListByTopic(context.Background(), "t")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(visits) != 1 {
		t.Fatalf("expected 1 visit after reopen, got %d", len(visits))
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var prev int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if seq <= prev {
			t.Fatalf("sequence not increasing: %d after %d", seq, prev)
		}
		prev = seq
	}
}

func TestAttemptSaveAndList(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()

	first := &Attempt{
		TopicID: "fractions", EntryID: "halves",
		Correct: 2, Incorrect: 1, AccuracyPercent: 67,
		TimeTakenSeconds: 90, SpeedPerMinute: 1.33,
	}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	if first.ID == "" || first.Sequence == 0 {
		t.Fatalf("expected id and sequence to be assigned, got %+v", first)
	}

	second := &Attempt{
		TopicID: "fractions", EntryID: "halves",
		Correct: 3, AccuracyPercent: 100,
		TimeTakenSeconds: 180, SpeedPerMinute: 1, TimedOut: true,
	}
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, &Attempt{TopicID: "decimals", EntryID: "tenths"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.ListByTopic(ctx, "fractions", QueryOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(got))
	}
	if got[0].ID != second.ID {
		t.Errorf("expected newest first")
	}
	if !got[0].TimedOut || got[1].TimedOut {
		t.Errorf("timed_out not round-tripped: %v %v", got[0].TimedOut, got[1].TimedOut)
	}
	if got[1].SpeedPerMinute != 1.33 {
		t.Errorf("speed = %v, want 1.33", got[1].SpeedPerMinute)
	}
	if got[1].CreatedAt.IsZero() {
		t.Error("expected created_at")
	}

	all, err := repo.ListByTopic(ctx, "", QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(all))
	}

	after, err := repo.ListByTopic(ctx, "", QueryOpts{After: second.Sequence})
	if err != nil {
		t.Fatalf("list after: %v", err)
	}
	if len(after) != 1 || after[0].TopicID != "decimals" {
		t.Fatalf("expected only the decimals attempt, got %+v", after)
	}
}

func TestAttemptBest(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()

	best, err := repo.Best(ctx, "fractions", "halves")
	if err != nil {
		t.Fatalf("best (empty): %v", err)
	}
	if best != nil {
		t.Fatal("expected nil when there are no attempts")
	}

	for _, acc := range []int{50, 100, 75} {
		if err := repo.Save(ctx, &Attempt{TopicID: "fractions", EntryID: "halves", AccuracyPercent: acc}); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	best, err = repo.Best(ctx, "fractions", "halves")
	if err != nil {
		t.Fatalf("best: %v", err)
	}
	if best == nil || best.AccuracyPercent != 100 {
		t.Fatalf("expected best accuracy 100, got %+v", best)
	}
}

func TestVisitRecordIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	repo := s.VisitRepo()
	ctx := context.Background()

	for _, v := range [][2]string{
		{"e1", "lesson"},
		{"e1", "quiz"},
		{"e1", "lesson"},
		{"e2", "test"},
	} {
		if err := repo.Record(ctx, "fractions", v[0], v[1]); err != nil {
			t.Fatalf("record %v: %v", v, err)
		}
	}
	if err := repo.Record(ctx, "decimals", "e1", "lesson"); err != nil {
		t.Fatalf("record: %v", err)
	}

	visits, err := repo.ListByTopic(ctx, "fractions")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(visits) != 3 {
		t.Fatalf("expected 3 distinct visits, got %d", len(visits))
	}
	if visits[0].Activity != "lesson" || visits[2].EntryID != "e2" {
		t.Errorf("unexpected order: %+v", visits)
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.AttemptRepo().Save(ctx, &Attempt{TopicID: "t", EntryID: "e"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.VisitRepo().Record(ctx, "t", "e", "quiz"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := s.LLMCallRepo().Append(ctx, LLMCall{Provider: "mock", Model: "mock", Purpose: "test-gen", Success: true}); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	attempts, _ := s.AttemptRepo().ListByTopic(ctx, "", QueryOpts{})
	visits, _ := s.VisitRepo().ListByTopic(ctx, "t")
	calls, _ := s.LLMCallRepo().Query(ctx, QueryOpts{})
	if len(attempts) != 0 || len(visits) != 0 {
		t.Fatalf("expected progress cleared, got %d attempts %d visits", len(attempts), len(visits))
	}
	if len(calls) != 1 {
		t.Fatalf("expected LLM log kept, got %d calls", len(calls))
	}
}

func TestLLMCallLog(t *testing.T) {
	s := openTestStore(t)
	repo := s.LLMCallRepo()
	ctx := context.Background()

	calls := []LLMCall{
		{Provider: "anthropic", Model: "claude-haiku-4-5-20251001", Purpose: "test-gen", InputTokens: 100, OutputTokens: 40, Success: true, RequestBody: "[system]\nhi"},
		{Provider: "anthropic", Model: "claude-haiku-4-5-20251001", Purpose: "test-gen", InputTokens: 50, Success: false, ErrorMessage: "rate limited"},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "quiz-gen", InputTokens: 10, OutputTokens: 5, Success: true},
	}
	for _, c := range calls {
		if err := repo.Append(ctx, c); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.Query(ctx, QueryOpts{Limit: 10})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 calls, got %d", len(got))
	}
	if got[0].Model != "gpt-4o-mini" {
		t.Errorf("expected newest first, got %q", got[0].Model)
	}

	one, err := repo.Get(ctx, got[2].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if one == nil || one.RequestBody != "[system]\nhi" {
		t.Fatalf("unexpected call: %+v", one)
	}
	if missing, err := repo.Get(ctx, 9999); err != nil || missing != nil {
		t.Fatalf("expected nil for missing id, got %+v, %v", missing, err)
	}

	recent, err := repo.Query(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("query from: %v", err)
	}
	if len(recent) != 0 {
		t.Fatalf("expected no calls in the future, got %d", len(recent))
	}

	usage, err := repo.UsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(usage) != 2 {
		t.Fatalf("expected 2 usage rows, got %d", len(usage))
	}
	gen := usage[1]
	if gen.Purpose != "test-gen" || gen.Calls != 2 || gen.Failures != 1 || gen.InputTokens != 150 {
		t.Errorf("unexpected test-gen usage: %+v", gen)
	}
}
