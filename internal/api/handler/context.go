package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/myne7x/store-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// performs a fast-fail check before any service call: both user id and role
// must be present. A token that parses but carries no usable identity is
// rejected with 401 rather than flowing into the services as an empty actor.
func ctxIdentity(c echo.Context) (userID string, role domain.Role, err error) {
	userID, _ = c.Get("user_id").(string)
	roleStr, _ := c.Get("role").(string)
	if userID == "" || roleStr == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, domain.Role(roleStr), nil
}

// ctxEmail returns the authenticated caller's email claim, if any.
func ctxEmail(c echo.Context) string {
	email, _ := c.Get("email").(string)
	return email
}
