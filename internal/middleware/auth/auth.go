package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/leave_management/internal/logging"
	"github.com/Skotchmaster/leave_management/internal/models"
	"github.com/Skotchmaster/leave_management/internal/service"
	"github.com/Skotchmaster/leave_management/internal/tokens"
)

const (
	msgTokenMissing   = "Authorization token not provided"
	msgSecretMissing  = "JWT secret is not configured properly"
	msgTokenExpired   = "Token has expired. Please Login again"
	msgTokenInvalid   = "Invalid token. refresh and Please Login again"
	msgForbidden      = "Forbidden"
	msgUserNotFound   = "User not found"
	msgInternalServer = "Internal server error"
)

type UserFinder interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type Authenticator struct {
	Tokens *tokens.Issuer
	Users  UserFinder
}

func NewAuthenticator(issuer *tokens.Issuer, users UserFinder) *Authenticator {
	return &Authenticator{Tokens: issuer, Users: users}
}

func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get(echo.HeaderAuthorization))
	if len(h) < len("Bearer ") || !strings.EqualFold(h[:len("Bearer ")], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(h[len("Bearer "):])
}

// RequireAuth verifies the bearer session token and stores its claims on the request context.
func (a *Authenticator) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("mw", "auth")

		raw := bearerToken(c.Request())
		if raw == "" {
			l.Warn("auth_failed", "status", 401, "reason", "missing bearer token")
			return echo.NewHTTPError(http.StatusUnauthorized, msgTokenMissing)
		}

		claims, err := a.Tokens.ParseSession(raw)
		switch {
		case err == nil:
		case errors.Is(err, tokens.ErrSecretMissing):
			l.Error("auth_failed", "status", 500, "reason", "jwt secret missing")
			return echo.NewHTTPError(http.StatusInternalServerError, msgSecretMissing)
		case errors.Is(err, tokens.ErrTokenExpired):
			l.Warn("auth_failed", "status", 401, "reason", "token expired")
			return echo.NewHTTPError(http.StatusUnauthorized, msgTokenExpired)
		default:
			l.Warn("auth_failed", "status", 403, "reason", "token invalid")
			return echo.NewHTTPError(http.StatusForbidden, msgTokenInvalid)
		}

		ctx = WithClaims(ctx, claims)
		ctx = logging.IntoContext(ctx, logging.FromContext(ctx).With("user_id", claims.UserID, "role", claims.Role))
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// RequireRoles admits callers whose role is exactly one of roles. It must run after RequireAuth.
func RequireRoles(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			claims, ok := ClaimsFromContext(ctx)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, msgTokenMissing)
			}
			for _, r := range roles {
				if claims.Role == r {
					return next(c)
				}
			}
			logging.FromContext(ctx).Warn("role_denied", "status", 403, "mw", "roles", "required", roles)
			return echo.NewHTTPError(http.StatusForbidden, msgForbidden)
		}
	}
}

// LoadCurrentUser re-reads the authenticated user from the store. It must run after RequireAuth.
func (a *Authenticator) LoadCurrentUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		claims, ok := ClaimsFromContext(ctx)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, msgTokenMissing)
		}

		user, err := a.Users.GetByID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				logging.FromContext(ctx).Warn("current_user_failed", "status", 404, "reason", "user not found")
				return echo.NewHTTPError(http.StatusNotFound, msgUserNotFound)
			}
			logging.FromContext(ctx).Error("current_user_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, msgInternalServer).SetInternal(err)
		}

		c.SetRequest(c.Request().WithContext(WithUser(ctx, user)))
		return next(c)
	}
}
