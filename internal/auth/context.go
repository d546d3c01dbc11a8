package auth

import (
	"context"

	"book_tracker/internal/models"
)

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying claim.
func WithIdentity(ctx context.Context, claim *models.IdentityClaim) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, identityKey{}, claim)
}

// IdentityFromContext returns the claim attached by the auth middleware, if any.
func IdentityFromContext(ctx context.Context) (*models.IdentityClaim, bool) {
	if ctx == nil {
		return nil, false
	}
	claim, ok := ctx.Value(identityKey{}).(*models.IdentityClaim)
	return claim, ok && claim != nil
}
