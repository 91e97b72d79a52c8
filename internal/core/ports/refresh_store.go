package ports

import "context"

// RefreshStore keeps issued refresh tokens with a TTL. Resolve returns
// domain.ErrInvalidRefreshToken for unknown or expired tokens.
type RefreshStore interface {
	Issue(ctx context.Context, userID string) (string, error)
	Resolve(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}
