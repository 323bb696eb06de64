package generator

import (
	"context"
	"errors"
	"sync"

	"wiki-quiz/internal/domain"
)

// ErrNoResponses is returned by Mock once its queue is exhausted.
var ErrNoResponses = errors.New("mock generator: no responses left")

// MockResponse is a canned reply for Mock.
type MockResponse struct {
	Text string
	Err  error
}

// Mock is a deterministic TextGenerator for tests and offline runs.
// It replays canned responses in FIFO order and records every prompt.
type Mock struct {
	mu        sync.Mutex
	responses []MockResponse
	Prompts   []string
	Options   []domain.GenerateOptions
}

func NewMock(responses ...MockResponse) *Mock {
	return &Mock{responses: responses}
}

func (m *Mock) Generate(_ context.Context, prompt string, opts domain.GenerateOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Prompts = append(m.Prompts, prompt)
	m.Options = append(m.Options, opts)

	if len(m.responses) == 0 {
		return "", ErrNoResponses
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp.Text, resp.Err
}

// Calls returns how many times Generate has been invoked.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}

func (m *Mock) ModelID() string {
	return "mock"
}

var _ domain.TextGenerator = (*Mock)(nil)
