package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/petrohaul/transport-system/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call:
//   - role must be non-empty (presence proves the middleware ran).
//   - every non-admin role requires a non-empty actor_id; without it the JWT
//     is structurally valid but operationally unusable — reject with 401.
func ctxClaims(c echo.Context) (role, actorID string, err error) {
	role, _ = c.Get("role").(string)
	if role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	actorID, _ = c.Get("actor_id").(string)
	if role != domain.RoleAdmin && actorID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "token missing actor identity")
	}

	return role, actorID, nil
}
