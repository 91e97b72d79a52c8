package ports

import (
	"context"

	"github.com/georgemunganga/ntumai-core/internal/core/domain"
)

// RegisterInput carries everything needed to create an account.
type RegisterInput struct {
	Name        string
	Email       string
	Phone       string
	CountryCode string
	Password    string
	Role        domain.Role
}

// AuthResult bundles the artifacts of a successful authentication.
type AuthResult struct {
	User         *domain.User
	Token        string
	RefreshToken string
	ExpiresIn    int64
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, creds domain.LoginCredentials) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, refreshToken string) error
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, patch domain.UserPatch) (*domain.User, error)
}
