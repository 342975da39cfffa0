package http

import (
	"context"

	"brinquedos-backend/internal/domain"
	"brinquedos-backend/internal/security"
)

type contextKey int

const claimsKey contextKey = iota

func withClaims(ctx context.Context, claims *security.UserClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the token claims the auth middleware attached to
// the request context.
func ClaimsFromContext(ctx context.Context) (*security.UserClaims, error) {
	claims, ok := ctx.Value(claimsKey).(*security.UserClaims)
	if !ok || claims == nil {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

// orgID is the tenant every handler scopes its calls to.
func orgID(ctx context.Context) (int32, error) {
	claims, err := ClaimsFromContext(ctx)
	if err != nil {
		return 0, err
	}
	return claims.OrgID, nil
}
