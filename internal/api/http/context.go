package http

import (
	"context"

	"rentacar-backend/internal/security"
)

type contextKey struct{}

func withOperator(ctx context.Context, claims *security.OperatorClaims) context.Context {
	return context.WithValue(ctx, contextKey{}, claims)
}

// OperatorFromContext returns the authenticated operator, if any
func OperatorFromContext(ctx context.Context) (*security.OperatorClaims, bool) {
	claims, ok := ctx.Value(contextKey{}).(*security.OperatorClaims)
	return claims, ok
}
