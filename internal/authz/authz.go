// Package authz maps authenticated identities to the operations they may
// perform. Roles are a closed enumeration; handlers never compare raw
// slug strings.
package authz

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"formhub/internal/auth"
	"formhub/internal/model"
	"formhub/internal/repository"
)

// Role is a permission tier known to the system.
type Role string

const (
	// Admin has full CRUD over users, roles, forms and submissions.
	Admin Role = "admin"
	// User covers self-service: own profile and credentials, form
	// listing/viewing/submission, logout.
	User Role = "user"
)

const userContextKey = "authz.user"

// CurrentUser returns the authenticated user attached by Authenticate,
// or nil when the request is unauthenticated.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}

// Authenticate runs after the JWT middleware has verified the signature.
// It rejects tokens whose session has been revoked and resolves the
// caller's user record with roles, so downstream gates check live role
// assignments rather than claims frozen at login time.
func Authenticate(sessionStore auth.SessionStoreInterface, userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated")
			}

			ctx := c.Request().Context()
			active, err := sessionStore.IsSessionActive(ctx, claims.ID)
			if err != nil || !active {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated")
			}

			user, err := userRepo.FindByID(ctx, claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated")
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// RequireRole denies the request before the handler runs unless the caller
// holds the role. Denial is a 403, distinct from the 401 an unauthenticated
// request receives, and has no side effects.
func RequireRole(role Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated")
			}
			if !user.HasRole(string(role)) {
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
			}
			return next(c)
		}
	}
}
