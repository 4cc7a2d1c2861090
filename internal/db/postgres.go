package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"triage-agent/pkg"
)

// PostgresStore persists conversation state as one JSONB row per
// conversation. The caller is responsible for managing the DB connection
// lifecycle.
type PostgresStore struct {
	DB *sql.DB
}

// NewPostgresStore constructs a PostgresStore from an existing sql.DB.
func NewPostgresStore(db *sql.DB) *PostgresStore { return &PostgresStore{DB: db} }

// Load fetches the state for a conversation, returning an empty state when
// no row exists.
func (s *PostgresStore) Load(ctx context.Context, conversationID string) (*pkg.ConversationState, error) {
	var raw []byte
	err := s.DB.QueryRowContext(ctx,
		`SELECT state FROM conversations WHERE id = $1`,
		conversationID,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &pkg.ConversationState{}, nil
		}
		return nil, fmt.Errorf("load conversation %s: %w", conversationID, err)
	}
	var state pkg.ConversationState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode conversation %s: %w", conversationID, err)
	}
	return &state, nil
}

// Save upserts the full state for a conversation.
func (s *PostgresStore) Save(ctx context.Context, conversationID string, state *pkg.ConversationState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode conversation %s: %w", conversationID, err)
	}
	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO conversations (id, state, updated_at)
         VALUES ($1, $2, NOW())
         ON CONFLICT (id) DO UPDATE SET state = EXCLUDED.state, updated_at = NOW()`,
		conversationID, raw,
	)
	if err != nil {
		return fmt.Errorf("save conversation %s: %w", conversationID, err)
	}
	return nil
}

var _ Store = (*PostgresStore)(nil)
