package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/georgemunganga/ntumai-core/internal/core/domain"
)

const defaultSessionKey = "ntumai:session"

// SessionStorage persists the session snapshot as a JSON blob under a
// single fixed key.
type SessionStorage struct {
	client *redis.Client
	key    string
}

// NewSessionStorage creates a SessionStorage. An empty key selects the default.
func NewSessionStorage(client *redis.Client, key string) *SessionStorage {
	if key == "" {
		key = defaultSessionKey
	}
	return &SessionStorage{client: client, key: key}
}

// Load reads the snapshot back. A never-written key yields (nil, nil).
func (s *SessionStorage) Load(ctx context.Context) (*domain.PersistedSession, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var session domain.PersistedSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (s *SessionStorage) Save(ctx context.Context, session domain.PersistedSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStorage) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
