package handler

import "github.com/georgemunganga/ntumai-core/internal/core/domain"

type registerRequest struct {
	Name        string `json:"name"         validate:"required"`
	Email       string `json:"email"        validate:"omitempty,email"`
	Phone       string `json:"phone"        validate:"omitempty"`
	CountryCode string `json:"country_code" validate:"omitempty"`
	Password    string `json:"password"     validate:"required,min=8"`
	Role        string `json:"role"         validate:"required,oneof=customer tasker vendor admin"`
}

type loginRequest struct {
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CountryCode string `json:"country_code"`
	Password    string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type updateProfileRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone"`
	CountryCode *string `json:"country_code"`
	AvatarURL   *string `json:"avatar_url"`
}

// authData is the success payload of the auth envelope.
type authData struct {
	User         *domain.User `json:"user,omitempty"`
	Token        string       `json:"token,omitempty"`
	RefreshToken string       `json:"refresh_token,omitempty"`
	ExpiresIn    int64        `json:"expires_in,omitempty"`
}

// authEnvelope is the wire contract the mobile client consumes: success,
// optional data, optional human-readable error.
type authEnvelope struct {
	Success bool      `json:"success"`
	Data    *authData `json:"data,omitempty"`
	Error   string    `json:"error,omitempty"`
}

func okEnvelope(data *authData) authEnvelope {
	return authEnvelope{Success: true, Data: data}
}

func errEnvelope(msg string) authEnvelope {
	return authEnvelope{Success: false, Error: msg}
}
