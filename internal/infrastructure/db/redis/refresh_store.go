package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/georgemunganga/ntumai-core/internal/core/domain"
)

const refreshPrefix = "refresh:"

// RefreshStore keeps refresh tokens in Redis with a TTL. Expiry is handled
// entirely by Redis.
type RefreshStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRefreshStore(client *redis.Client, ttl time.Duration) *RefreshStore {
	return &RefreshStore{client: client, ttl: ttl}
}

// Issue mints an opaque token bound to userID.
func (r *RefreshStore) Issue(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	if err := r.client.Set(ctx, refreshPrefix+token, userID, r.ttl).Err(); err != nil {
		return "", fmt.Errorf("issue refresh token: %w", err)
	}
	return token, nil
}

// Resolve maps a token back to its user. Unknown and expired tokens are
// indistinguishable.
func (r *RefreshStore) Resolve(ctx context.Context, token string) (string, error) {
	userID, err := r.client.Get(ctx, refreshPrefix+token).Result()
	if err != nil {
		if err == redis.Nil {
			return "", domain.ErrInvalidRefreshToken
		}
		return "", fmt.Errorf("resolve refresh token: %w", err)
	}
	return userID, nil
}

func (r *RefreshStore) Revoke(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, refreshPrefix+token).Err(); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}
