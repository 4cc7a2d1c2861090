package db

import (
	"context"
	"sync"

	"triage-agent/pkg"
)

// MemoryStore is an in-process Store for tests and local runs. It hands out
// deep copies so callers cannot mutate stored state in place.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]*pkg.ConversationState
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]*pkg.ConversationState)}
}

func (s *MemoryStore) Load(ctx context.Context, conversationID string) (*pkg.ConversationState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[conversationID]
	if !ok {
		return &pkg.ConversationState{}, nil
	}
	return state.Clone(), nil
}

func (s *MemoryStore) Save(ctx context.Context, conversationID string, state *pkg.ConversationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[conversationID] = state.Clone()
	return nil
}

var _ Store = (*MemoryStore)(nil)
