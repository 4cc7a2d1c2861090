package llm

import (
	"context"
	"errors"

	"triage-agent/pkg"
)

// MockClient is a scriptable completion client for tests and local runs. It
// returns the queued completions in order and records every prompt it was
// given.
type MockClient struct {
	Completions []*Completion
	Err         error

	Calls [][]pkg.Message
}

// NewMockClient queues the given completions.
func NewMockClient(completions ...*Completion) *MockClient {
	return &MockClient{Completions: completions}
}

// Complete pops the next scripted completion.
func (m *MockClient) Complete(ctx context.Context, messages []pkg.Message, tools []ToolSpec) (*Completion, error) {
	prompt := make([]pkg.Message, len(messages))
	copy(prompt, messages)
	m.Calls = append(m.Calls, prompt)

	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Completions) == 0 {
		return nil, errors.New("mock client: no completions queued")
	}
	next := m.Completions[0]
	m.Completions = m.Completions[1:]
	return next, nil
}

var _ Client = (*MockClient)(nil)
