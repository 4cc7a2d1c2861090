package db

import (
	"context"

	"triage-agent/pkg"
)

// Store is durable keyed storage of conversation state. Absence is a valid
// initial condition: Load returns an empty state, never a not-found error.
// Save is a full-state upsert. Load after Save for the same key, with no
// intervening writer, returns exactly what was saved.
type Store interface {
	Load(ctx context.Context, conversationID string) (*pkg.ConversationState, error)
	Save(ctx context.Context, conversationID string, state *pkg.ConversationState) error
}
