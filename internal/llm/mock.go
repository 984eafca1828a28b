package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

const mockModel = "mock"

var errScriptExhausted = errors.New("mock provider has no scripted reply left")

// MockResponse is one scripted reply. A non-nil Err is returned instead of
// content.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays scripted replies in order and records every
// request. Once the script runs out it asks Fallback, or fails with
// ErrProviderUnavailable when Fallback is nil.
type MockProvider struct {
	Fallback func(Request) (json.RawMessage, error)

	mu     sync.Mutex
	script []MockResponse
	calls  []Request
}

// NewMockProvider returns a provider that replays responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{script: responses}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	var next *MockResponse
	if len(m.script) > 0 {
		next = &m.script[0]
		m.script = m.script[1:]
	}
	m.mu.Unlock()

	if next == nil {
		if m.Fallback == nil {
			return nil, &ErrProviderUnavailable{Err: errScriptExhausted}
		}
		content, err := m.Fallback(req)
		if err != nil {
			return nil, err
		}
		return &Response{Content: content, Model: mockModel, StopReason: StopEnd}, nil
	}
	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{Content: next.Content, Usage: next.Usage, Model: mockModel, StopReason: StopEnd}, nil
}

func (m *MockProvider) ModelID() string { return mockModel }

// Calls returns a copy of the recorded requests.
func (m *MockProvider) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.calls...)
}

// CallCount returns how many requests were made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// plainReply answers free-text requests with "ok" so the mock provider can
// pass a connectivity check. Structured requests are refused.
func plainReply(req Request) (json.RawMessage, error) {
	if req.Schema != nil {
		return nil, &ErrInvalidResponse{Err: errors.New("mock provider cannot produce " + req.Schema.Name)}
	}
	return json.RawMessage("ok"), nil
}
