package middleware

import (
	"net/http"
	"strings"

	"mindlift/internal/entity"
	"mindlift/internal/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AuthMiddleware struct {
	JWT *utils.JWTManager
}

// RequireAuth rejects with 401 before any business logic runs when the
// bearer token is missing, malformed, expired or signed wrong.
func (m AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.JWT == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		token := extractBearerToken(c.Request())
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		claims, err := m.JWT.ParseSessionToken(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		SetAuthContext(c, userID, claims.Email, entity.UserRole(claims.Role))
		return next(c)
	}
}

// OptionalAuth sets the auth context when a valid bearer token is
// present and falls through silently otherwise. For routes that are
// public but reveal more to an identified caller.
func (m AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.JWT == nil {
			return next(c)
		}
		token := extractBearerToken(c.Request())
		if token == "" {
			return next(c)
		}
		claims, err := m.JWT.ParseSessionToken(token)
		if err != nil {
			return next(c)
		}
		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			return next(c)
		}
		SetAuthContext(c, userID, claims.Email, entity.UserRole(claims.Role))
		return next(c)
	}
}

func extractBearerToken(r *http.Request) string {
	authorization := r.Header.Get("Authorization")
	if authorization == "" {
		return ""
	}
	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
