package auth

import (
	"context"

	"github.com/Skotchmaster/leave_management/internal/models"
	"github.com/Skotchmaster/leave_management/internal/tokens"
)

type claimsKey struct{}
type userKey struct{}

func WithClaims(ctx context.Context, c *tokens.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

func ClaimsFromContext(ctx context.Context) (*tokens.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*tokens.Claims)
	return c, ok && c != nil
}

func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey{}).(*models.User)
	return u, ok && u != nil
}

// ActorFromContext describes the caller from the verified claims, preferring the
// freshly loaded user record when LoadCurrentUser ran.
func ActorFromContext(ctx context.Context) (models.Actor, bool) {
	if u, ok := UserFromContext(ctx); ok {
		return models.Actor{ID: u.ID, Email: u.Email, Role: u.Role, Username: u.Username}, true
	}
	c, ok := ClaimsFromContext(ctx)
	if !ok {
		return models.Actor{}, false
	}
	return models.Actor{ID: c.UserID, Email: c.Email, Role: c.Role}, true
}
