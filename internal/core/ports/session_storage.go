package ports

import (
	"context"

	"github.com/georgemunganga/ntumai-core/internal/core/domain"
)

// SessionStorage is durable key-value storage for the persisted session
// snapshot. Load returns (nil, nil) when no snapshot has ever been saved;
// a missing snapshot is not an error.
type SessionStorage interface {
	Load(ctx context.Context) (*domain.PersistedSession, error)
	Save(ctx context.Context, session domain.PersistedSession) error
	Clear(ctx context.Context) error
}
