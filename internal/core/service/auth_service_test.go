package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/georgemunganga/ntumai-core/internal/core/domain"
	"github.com/georgemunganga/ntumai-core/internal/core/ports"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email != "" && u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByPhone(_ context.Context, countryCode, phone string) (*domain.User, error) {
	for _, u := range r.users {
		if u.CountryCode == countryCode && u.Phone == phone {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type stubRefreshStore struct {
	tokens map[string]string
	seq    int
}

func newStubRefreshStore() *stubRefreshStore {
	return &stubRefreshStore{tokens: make(map[string]string)}
}

func (s *stubRefreshStore) Issue(_ context.Context, userID string) (string, error) {
	s.seq++
	token := fmt.Sprintf("refresh-%d", s.seq)
	s.tokens[token] = userID
	return token, nil
}

func (s *stubRefreshStore) Resolve(_ context.Context, token string) (string, error) {
	if userID, ok := s.tokens[token]; ok {
		return userID, nil
	}
	return "", domain.ErrInvalidRefreshToken
}

func (s *stubRefreshStore) Revoke(_ context.Context, token string) error {
	delete(s.tokens, token)
	return nil
}

func newTestService() (*AuthService, *stubUserRepo, *stubRefreshStore) {
	repo := newStubUserRepo()
	refresh := newStubRefreshStore()
	return NewAuthService(repo, refresh, "secret", time.Hour), repo, refresh
}

func register(t *testing.T, svc *AuthService, email string, role domain.Role) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Ann", Email: email, Password: "s3cret-pw", Role: role,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return user
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	svc, _, _ := newTestService()
	user := register(t, svc, "ann@example.com", domain.RoleCustomer)

	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.PasswordHash == "s3cret-pw" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pw")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "", Password: "pw", Role: domain.RoleCustomer}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Bob", Email: "b@x.co", Password: "pw", Role: "driver"}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for bad role, got %v", err)
	}
	// No identification method at all.
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Bob", Password: "pw", Role: domain.RoleTasker}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials without email or phone, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _, _ := newTestService()
	register(t, svc, "dup@example.com", domain.RoleCustomer)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Bob", Email: "dup@example.com", Password: "other-pw", Role: domain.RoleCustomer,
	}); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_ByEmail(t *testing.T) {
	svc, _, _ := newTestService()
	register(t, svc, "carol@example.com", domain.RoleVendor)

	result, err := svc.Login(context.Background(), domain.LoginCredentials{Email: "carol@example.com", Password: "s3cret-pw"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" || result.RefreshToken == "" {
		t.Fatalf("expected tokens, got %+v", result)
	}
	if result.ExpiresIn != int64(time.Hour.Seconds()) {
		t.Fatalf("unexpected expires_in: %d", result.ExpiresIn)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(result.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != string(domain.RoleVendor) {
		t.Fatalf("expected role %s, got %v", domain.RoleVendor, claims["role"])
	}
	if claims["sub"] != result.User.ID {
		t.Fatalf("expected sub %s, got %v", result.User.ID, claims["sub"])
	}
}

func TestAuthService_Login_ByPhone(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Dave", Phone: "5551234", CountryCode: "+260", Password: "s3cret-pw", Role: domain.RoleTasker,
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Login(context.Background(), domain.LoginCredentials{Phone: "5551234", CountryCode: "+260", Password: "s3cret-pw"})
	if err != nil {
		t.Fatalf("login by phone failed: %v", err)
	}
	if result.User.Role != domain.RoleTasker {
		t.Fatalf("unexpected user: %+v", result.User)
	}
}

func TestAuthService_Login_InvalidShape(t *testing.T) {
	svc, _, _ := newTestService()
	// Phone without country code never reaches the repository.
	if _, err := svc.Login(context.Background(), domain.LoginCredentials{Phone: "5551234", Password: "pw"}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _, _ := newTestService()
	register(t, svc, "eve@example.com", domain.RoleCustomer)

	if _, err := svc.Login(context.Background(), domain.LoginCredentials{Email: "eve@example.com", Password: "wrong"}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.Login(context.Background(), domain.LoginCredentials{Email: "ghost@example.com", Password: "pw"}); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Refresh_Rotates(t *testing.T) {
	svc, _, refresh := newTestService()
	register(t, svc, "frank@example.com", domain.RoleCustomer)

	first, err := svc.Login(context.Background(), domain.LoginCredentials{Email: "frank@example.com", Password: "s3cret-pw"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	second, err := svc.Refresh(context.Background(), first.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if second.RefreshToken == first.RefreshToken {
		t.Fatalf("refresh token not rotated")
	}
	if _, ok := refresh.tokens[first.RefreshToken]; ok {
		t.Fatalf("old refresh token still valid")
	}

	if _, err := svc.Refresh(context.Background(), first.RefreshToken); err != domain.ErrInvalidRefreshToken {
		t.Fatalf("expected ErrInvalidRefreshToken for reused token, got %v", err)
	}
}

func TestAuthService_Logout_Revokes(t *testing.T) {
	svc, _, _ := newTestService()
	register(t, svc, "gina@example.com", domain.RoleCustomer)

	result, err := svc.Login(context.Background(), domain.LoginCredentials{Email: "gina@example.com", Password: "s3cret-pw"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.Logout(context.Background(), result.RefreshToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.Refresh(context.Background(), result.RefreshToken); err != domain.ErrInvalidRefreshToken {
		t.Fatalf("expected revoked token, got %v", err)
	}
}

func TestAuthService_UpdateProfile(t *testing.T) {
	svc, _, _ := newTestService()
	user := register(t, svc, "hana@example.com", domain.RoleVendor)

	name := "Hana N."
	updated, err := svc.UpdateProfile(context.Background(), user.ID, domain.UserPatch{Name: &name})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Hana N." || updated.Email != "hana@example.com" {
		t.Fatalf("unexpected user after update: %+v", updated)
	}

	if _, err := svc.UpdateProfile(context.Background(), "missing", domain.UserPatch{Name: &name}); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
