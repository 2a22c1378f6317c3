package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

var answerFormat = &Format{
	Name: "test-answer",
	Schema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"answer": map[string]any{"type": "string"},
		},
		"required":             []string{"answer"},
		"additionalProperties": false,
	},
}

func TestMockProvider_RepliesInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockReply{Content: json.RawMessage(`{"answer":"a"}`), Usage: Usage{InputTokens: 10, OutputTokens: 5}},
		MockReply{Content: json.RawMessage(`{"answer":"b"}`)},
	)

	first, err := mock.Generate(context.Background(), Request{Prompt: "one", Format: answerFormat})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(first.Content) != `{"answer":"a"}` {
		t.Fatalf("unexpected content: %s", first.Content)
	}
	if first.Usage.Total() != 15 {
		t.Fatalf("expected 15 tokens, got %d", first.Usage.Total())
	}

	second, err := mock.Generate(context.Background(), Request{Prompt: "two"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(second.Content) != `{"answer":"b"}` {
		t.Fatalf("unexpected content: %s", second.Content)
	}

	calls := mock.Calls()
	if len(calls) != 2 || calls[1].Prompt != "two" {
		t.Fatalf("calls not recorded: %+v", calls)
	}
}

func TestMockProvider_EmptyQueueIsUnavailable(t *testing.T) {
	_, err := NewMockProvider().Generate(context.Background(), Request{})
	if kind, ok := KindOf(err); !ok || kind != KindUnavailable {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestMockProvider_ValidatesFormat(t *testing.T) {
	mock := NewMockProvider(MockReply{Content: json.RawMessage(`{"wrong":1}`)})

	_, err := mock.Generate(context.Background(), Request{Format: answerFormat})
	if kind, ok := KindOf(err); !ok || kind != KindInvalidOutput {
		t.Fatalf("expected invalid output, got %v", err)
	}
}

func TestValidateJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"answer":"yes"}`, false},
		{"missing field", `{}`, true},
		{"extra field", `{"answer":"yes","x":1}`, true},
		{"not json", `answer: yes`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON(answerFormat, []byte(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateJSON(%s) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
		})
	}

	if err := ValidateJSON(nil, []byte("anything")); err != nil {
		t.Fatalf("nil format should accept anything, got %v", err)
	}
}

func TestProviderError(t *testing.T) {
	cause := errors.New("boom")
	err := error(&ProviderError{Kind: KindRateLimited, Err: cause})

	if !errors.Is(err, cause) {
		t.Fatal("expected ProviderError to unwrap to its cause")
	}
	if err.Error() != "llm: rate limited: boom" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if _, ok := KindOf(cause); ok {
		t.Fatal("plain errors have no kind")
	}
	if got := classifyStatus(429, cause); mustKind(t, got) != KindRateLimited {
		t.Fatal("429 should be rate limited")
	}
	if got := classifyStatus(503, cause); mustKind(t, got) != KindUnavailable {
		t.Fatal("503 should be unavailable")
	}
}

func mustKind(t *testing.T, err error) ErrorKind {
	t.Helper()
	k, ok := KindOf(err)
	if !ok {
		t.Fatalf("expected ProviderError, got %T", err)
	}
	return k
}

func TestPurpose(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != "unknown" {
		t.Fatalf("expected unknown, got %q", got)
	}
	ctx := WithPurpose(context.Background(), "test-gen")
	if got := PurposeFrom(ctx); got != "test-gen" {
		t.Fatalf("expected test-gen, got %q", got)
	}
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		provider, in, want string
	}{
		{ProviderAnthropic, "claude-haiku", "claude-haiku-4-5-20251001"},
		{ProviderAnthropic, "claude-sonnet-4-20250514", "claude-sonnet-4-20250514"},
		{ProviderGemini, "gemini-flash", "gemini-2.0-flash"},
		{ProviderOpenRouter, "gemini-flash", "gemini-flash"},
	}
	for _, tt := range tests {
		if got := ResolveModel(tt.provider, tt.in); got != tt.want {
			t.Errorf("ResolveModel(%q, %q) = %q, want %q", tt.provider, tt.in, got, tt.want)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error without an API key")
	}

	cfg.Endpoints[ProviderAnthropic] = Endpoint{APIKey: "k", Model: "claude-haiku"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.Provider = ProviderMock
	if err := cfg.Validate(); err != nil {
		t.Fatalf("mock needs no key: %v", err)
	}

	cfg.Provider = "carrier-pigeon"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestPrice(t *testing.T) {
	p, ok := PriceOf("gpt-4o-mini")
	if !ok {
		t.Fatal("expected a price for gpt-4o-mini")
	}
	got := p.Cost(Usage{InputTokens: 1_000_000, OutputTokens: 1_000_000})
	if got < 0.749 || got > 0.751 {
		t.Fatalf("cost = %v, want 0.75", got)
	}
	if _, ok := PriceOf("nope"); ok {
		t.Fatal("unexpected price for unknown model")
	}
}

func TestNewProvider_Mock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock
	cfg.Retry = RetryPolicy{MaxAttempts: 1}

	p, err := NewProvider(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != ProviderMock || p.ModelID() != "mock" {
		t.Fatalf("unexpected provider %s/%s", p.Name(), p.ModelID())
	}
}

func TestNewProvider_RequiresKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenAI
	if _, err := NewProvider(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestNewOpenRouterProvider(t *testing.T) {
	p, err := NewOpenRouterProvider(Endpoint{APIKey: "sk-or-test", Model: "anthropic/claude-3-haiku"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != ProviderOpenRouter {
		t.Errorf("name = %q", p.Name())
	}
	if p.ModelID() != "anthropic/claude-3-haiku" {
		t.Errorf("model ids pass through, got %q", p.ModelID())
	}

	if _, err := NewOpenRouterProvider(Endpoint{Model: "x"}); err == nil {
		t.Fatal("expected error for empty API key")
	}
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"prompt":  map[string]any{"type": "string"},
			"options": map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 2},
			"level":   map[string]any{"type": "string", "enum": []any{"easy", "hard"}},
			"mystery": map[string]any{"type": "uuid"},
		},
		"required": []string{"prompt", "options"},
	})

	if s.Type != "OBJECT" {
		t.Fatalf("expected OBJECT, got %s", s.Type)
	}
	if s.Properties["options"].Type != "ARRAY" || s.Properties["options"].Items.Type != "STRING" {
		t.Fatalf("unexpected options schema: %+v", s.Properties["options"])
	}
	if s.Properties["options"].MinItems == nil || *s.Properties["options"].MinItems != 2 {
		t.Fatal("expected minItems 2")
	}
	if len(s.Properties["level"].Enum) != 2 {
		t.Fatalf("expected 2 enum values")
	}
	if s.Properties["mystery"].Type != "STRING" {
		t.Fatalf("unknown types fall back to STRING")
	}
	if len(s.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(s.Required))
	}
}

func noSleep(context.Context, time.Duration) error { return nil }
