package utils

import "context"

type contextKey string

const claimsKey contextKey = "claims"

// SetClaimsContext stores the verified token claims on the request context.
func SetClaimsContext(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetClaimsFromContext returns the verified token claims, if any.
func GetClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}
