package ports

import (
	"context"

	"github.com/georgemunganga/ntumai-core/internal/core/domain"
)

// LoginData is the payload a successful remote login returns.
type LoginData struct {
	User         *domain.User `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token,omitempty"`
	ExpiresIn    int64        `json:"expires_in,omitempty"`
}

// LoginResult is the structured outcome of a remote login call. Success
// false carries a human-readable Error; transport-level failures are
// reported through the error return of AuthClient.Login instead.
type LoginResult struct {
	Success bool       `json:"success"`
	Data    *LoginData `json:"data,omitempty"`
	Error   string     `json:"error,omitempty"`
}

// AuthClient performs the network login call against the auth backend.
type AuthClient interface {
	Login(ctx context.Context, creds domain.LoginCredentials) (*LoginResult, error)
}
