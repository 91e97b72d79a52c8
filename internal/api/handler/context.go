package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/georgemunganga/ntumai-core/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// fast-fails before any service call: a user id and a known role must both
// be present, otherwise the token is structurally valid but operationally
// unusable.
func ctxClaims(c echo.Context) (userID string, role domain.Role, err error) {
	userID, _ = c.Get("user_id").(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	roleStr, _ := c.Get("role").(string)
	role, perr := domain.ParseRole(roleStr)
	if perr != nil {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "token carries no usable role")
	}

	return userID, role, nil
}
