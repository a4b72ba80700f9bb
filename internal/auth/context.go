package auth

import (
	"context"

	"ranchbook/internal/models"
)

type ctxKey int

const (
	userKey ctxKey = iota
	jtiKey
)

func withActor(ctx context.Context, user *models.User, jti string) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, jtiKey, jti)
}

// ActorFromContext returns the authenticated user, or nil outside an
// authenticated request.
func ActorFromContext(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}

// JTIFromContext returns the session id of the current request.
func JTIFromContext(ctx context.Context) string {
	jti, _ := ctx.Value(jtiKey).(string)
	return jti
}
