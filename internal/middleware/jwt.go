package middleware // reusable HTTP middleware functions

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"storefront/internal/utils"
)

// claimsKey is the context key under which verified token claims are
// stored for handlers and downstream middleware.
const claimsKey = "claims"

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and attaches the verified claims to the request context.  It
// establishes identity only; role checks are a separate, composable
// step (see RequireRole).  Handlers access the identity via
// middleware.ClaimsFrom(c).
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"status": "error", "message": "Missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ParseToken(raw, secret)
			if err != nil {
				// An expired token gets its own message so clients know to
				// refresh instead of re-authenticating.
				if errors.Is(err, utils.ErrTokenExpired) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"status": "error", "message": "Token expired"})
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"status": "error", "message": "Invalid token"})
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom extracts the verified claims placed by JWTAuth.  It returns
// nil when the request did not pass through the middleware.
func ClaimsFrom(c echo.Context) *utils.Claims {
	claims, _ := c.Get(claimsKey).(*utils.Claims)
	return claims
}
