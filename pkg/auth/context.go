package auth

import (
	"context"

	"github.com/vollmed/clinic-api/internal/domain"
)

type contextKey int

const (
	claimsKey contextKey = iota
	clientIPKey
)

// ContextWithClaims attaches validated token claims to a request context so
// downstream services can attribute actions to the caller.
func ContextWithClaims(ctx context.Context, claims *domain.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func ClaimsFromContext(ctx context.Context) (*domain.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*domain.Claims)
	return claims, ok
}

func ContextWithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

func ClientIPFromContext(ctx context.Context) (string, bool) {
	ip, ok := ctx.Value(clientIPKey).(string)
	return ip, ok
}
