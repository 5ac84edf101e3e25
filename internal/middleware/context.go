package middleware

import (
	"context"

	"careerconnect/internal/models"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal is the resolved identity attached to a request: the authenticated
// principal plus the role claim read from its profile record.
type Principal struct {
	UserID string
	Email  string
	Name   string
	Role   models.Role
}

func withPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}
