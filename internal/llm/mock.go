package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// MockReply is one scripted result for MockProvider.
type MockReply struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays scripted replies in order and records requests. Used
// by tests and by the "mock" provider setting.
type MockProvider struct {
	mu      sync.Mutex
	replies []MockReply
	calls   []Request
}

// NewMockProvider returns a MockProvider that will answer with replies.
func NewMockProvider(replies ...MockReply) *MockProvider {
	return &MockProvider{replies: replies}
}

func (m *MockProvider) Name() string    { return ProviderMock }
func (m *MockProvider) ModelID() string { return "mock" }

// Generate pops the next reply. With nothing queued it fails as
// unavailable. Scripted content is validated against req.Format like a real
// provider would.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, req)
	if len(m.replies) == 0 {
		return nil, unavailable(errors.New("mock: no replies queued"))
	}

	next := m.replies[0]
	m.replies = m.replies[1:]
	if next.Err != nil {
		return nil, next.Err
	}
	return finish(req, &Response{Content: next.Content, Usage: next.Usage, Model: "mock"})
}

// Queue appends replies.
func (m *MockProvider) Queue(replies ...MockReply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, replies...)
}

// Calls returns a copy of the requests received so far.
func (m *MockProvider) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.calls...)
}
