// middleware.go - Authentication middleware
package api

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/appforms/backend/internal/auth"
)

// userContextKey is where the authenticated user is stored on the request.
const userContextKey = "user"

// RequireAuth gates a route group behind the auth provider. The check is
// authentication only; authenticated users are not scoped to particular
// client folders, matching the backend's bucket-wide policy.
func RequireAuth(provider auth.Provider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return NewUnauthorizedError("missing bearer token")
			}

			user, err := provider.UserFromToken(c.Request().Context(), token)
			if err != nil {
				return NewUnauthorizedError("invalid or expired token")
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}
