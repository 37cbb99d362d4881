package middleware

import (
	"net/http"

	"mindlift/internal/entity"

	"github.com/labstack/echo/v4"
)

// RequireRole gates a route to a role set. A valid token with a role
// outside the set is 403, never 401.
func RequireRole(roles ...entity.UserRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			currentRole, ok := RoleFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			for _, role := range roles {
				if currentRole == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "forbidden")
		}
	}
}

// RequireNonAdmin gates routes that only make sense for end users, like
// bookmarks.
func RequireNonAdmin() echo.MiddlewareFunc {
	return RequireRole(entity.UserRoleSubscriber, entity.UserRoleSpeaker)
}
