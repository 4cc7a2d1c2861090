package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"triage-agent/internal/errx"
	"triage-agent/pkg"
	logx "triage-agent/pkg/logger"
)

// RedisStore keeps conversation state as one JSON value per conversation,
// with an optional TTL refreshed on every save.
type RedisStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewRedisStore constructs a RedisStore. A zero ttl means keys never expire.
func NewRedisStore(rdb redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) stateKey(conversationID string) string {
	return fmt.Sprintf("conversation:%s:state", conversationID)
}

// Load fetches the state for a conversation, returning an empty state when
// the key is absent.
func (s *RedisStore) Load(ctx context.Context, conversationID string) (*pkg.ConversationState, error) {
	key := s.stateKey(conversationID)
	raw, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &pkg.ConversationState{}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load conversation state from redis")
		return nil, errx.WrapRedis(err)
	}
	var state pkg.ConversationState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("decode conversation %s: %w", conversationID, err)
	}
	return &state, nil
}

// Save upserts the full state for a conversation and refreshes the TTL.
func (s *RedisStore) Save(ctx context.Context, conversationID string, state *pkg.ConversationState) error {
	b, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode conversation %s: %w", conversationID, err)
	}
	key := s.stateKey(conversationID)
	if err := s.rdb.Set(ctx, key, b, s.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to save conversation state to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
