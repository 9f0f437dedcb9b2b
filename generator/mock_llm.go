package generator

import (
	"context"
	"fmt"
	"sync"
)

// MockLLM is a scripted stand-in for the generation backend, for tests and
// local runs without an API key. Responses are consumed in order; when the
// script runs out it emits a minimal valid payload echoing the request.
type MockLLM struct {
	mu        sync.Mutex
	Responses []MockResponse
	calls     int
	Prompts   []Prompt
}

// MockResponse is one scripted reply: either a body or an error.
type MockResponse struct {
	Body string
	Err  error
}

func (m *MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, prompt)
	if m.calls < len(m.Responses) {
		r := m.Responses[m.calls]
		m.calls++
		if r.Err != nil {
			return "", r.Err
		}
		return r.Body, nil
	}
	m.calls++
	return fmt.Sprintf(`{"elements":[{"id":"mock-%d","type":"text","content":"Generated for: %s","styles":{},"position":{"x":0,"y":0},"size":{"width":800,"height":120}}],"suggestions":[],"reasoning":"mock response"}`,
		m.calls, prompt.User), nil
}

// Calls reports how many completions were requested.
func (m *MockLLM) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
