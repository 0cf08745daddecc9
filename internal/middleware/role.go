package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/model"
)

// RequireRole returns a middleware function that enforces that the
// authenticated identity holds one of the given roles.  It assumes
// JWTAuth has already run; a request with no verified claims or with a
// role outside the allowed set is rejected with 403 Forbidden.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFrom(c)
			if claims == nil || !allowed[model.Role(claims.Role)] {
				return c.JSON(http.StatusForbidden, echo.Map{"status": "error", "message": "Forbidden"})
			}
			return next(c)
		}
	}
}
