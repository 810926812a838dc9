package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/myne7x/store-api/internal/core/authz"
	"github.com/myne7x/store-api/internal/core/domain"
)

// Require rejects requests whose role may not perform op. The decision is
// delegated to the authz gate so HTTP routing and service-level checks can
// never disagree.
func Require(op authz.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if !authz.Allowed(domain.Role(role), op) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
