package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/georgemunganga/ntumai-core/internal/api/metrics"
	"github.com/georgemunganga/ntumai-core/internal/core/domain"
	"github.com/georgemunganga/ntumai-core/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authEnvelope
// @Failure      400   {object}  authEnvelope
// @Failure      409   {object}  authEnvelope
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errEnvelope("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errEnvelope(err.Error()))
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errEnvelope(err.Error()))
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		CountryCode: req.CountryCode,
		Password:    req.Password,
		Role:        role,
	})
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrUserExists):
			status = http.StatusConflict
		case errors.Is(err, domain.ErrInvalidCredentials):
			status = http.StatusBadRequest
		}
		return c.JSON(status, errEnvelope(err.Error()))
	}

	metrics.RegistrationsTotal.WithLabelValues(string(user.Role)).Inc()
	return c.JSON(http.StatusCreated, okEnvelope(&authData{User: user}))
}

// Login authenticates by email or phone+country code and returns tokens.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authEnvelope
// @Failure      400   {object}  authEnvelope
// @Failure      401   {object}  authEnvelope
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errEnvelope("invalid payload"))
	}

	result, err := h.authService.Login(c.Request().Context(), domain.LoginCredentials{
		Email:       req.Email,
		Phone:       req.Phone,
		CountryCode: req.CountryCode,
		Password:    req.Password,
	})
	if err != nil {
		status := http.StatusUnauthorized
		msg := "invalid credentials"
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			status = http.StatusNotFound
			msg = "user not found"
		case errors.Is(err, domain.ErrInvalidCredentials):
			// keep 401
		default:
			status = http.StatusInternalServerError
			msg = "internal server error"
		}
		return c.JSON(status, errEnvelope(msg))
	}

	return c.JSON(http.StatusOK, okEnvelope(&authData{
		User:         result.User,
		Token:        result.Token,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
	}))
}

// Refresh rotates a refresh token.
//
// @Summary      Refresh tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  authEnvelope
// @Failure      401   {object}  authEnvelope
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errEnvelope("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errEnvelope(err.Error()))
	}

	result, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRefreshToken) {
			return c.JSON(http.StatusUnauthorized, errEnvelope("invalid refresh token"))
		}
		return c.JSON(http.StatusInternalServerError, errEnvelope("internal server error"))
	}

	return c.JSON(http.StatusOK, okEnvelope(&authData{
		User:         result.User,
		Token:        result.Token,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
	}))
}

// Logout revokes the refresh token.
//
// @Summary      Logout
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      logoutRequest  true  "Refresh token to revoke"
// @Success      204   "revoked"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req logoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errEnvelope("invalid payload"))
	}
	if err := h.authService.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		return c.JSON(http.StatusInternalServerError, errEnvelope("internal server error"))
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated user's profile.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authEnvelope
// @Failure      401  {object}  authEnvelope
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Profile(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, errEnvelope("user not found"))
		}
		return c.JSON(http.StatusInternalServerError, errEnvelope("internal server error"))
	}

	return c.JSON(http.StatusOK, okEnvelope(&authData{User: user}))
}

// UpdateMe applies a partial profile update to the authenticated user.
//
// @Summary      Update profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "Fields to update"
// @Success      200   {object}  authEnvelope
// @Failure      401   {object}  authEnvelope
// @Router       /auth/me [patch]
func (h *AuthHandler) UpdateMe(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errEnvelope("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errEnvelope(err.Error()))
	}

	user, err := h.authService.UpdateProfile(c.Request().Context(), userID, domain.UserPatch{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		CountryCode: req.CountryCode,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, errEnvelope("user not found"))
		}
		return c.JSON(http.StatusInternalServerError, errEnvelope("internal server error"))
	}

	return c.JSON(http.StatusOK, okEnvelope(&authData{User: user}))
}

// Features returns the capability set of the caller's role, so the app can
// toggle UI affordances without hardcoding role checks.
//
// @Summary      Role capabilities
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.Features
// @Failure      401  {object}  authEnvelope
// @Router       /auth/features [get]
func (h *AuthHandler) Features(c echo.Context) error {
	_, role, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, domain.FeaturesFor(role))
}

// User looks up any account by id. Admin only.
//
// @Summary      Look up a user
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  authEnvelope
// @Failure      404  {object}  authEnvelope
// @Router       /admin/users/{id} [get]
func (h *AuthHandler) User(c echo.Context) error {
	user, err := h.authService.Profile(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, errEnvelope("user not found"))
		}
		return c.JSON(http.StatusInternalServerError, errEnvelope("internal server error"))
	}
	return c.JSON(http.StatusOK, okEnvelope(&authData{User: user}))
}
