// Package http provides HTTP handlers and middleware for employee sessions.
package http

import (
	"context"

	authDomain "github.com/allisson/employees/internal/auth/domain"
)

// identityKey is a context key type for storing authenticated identities.
type identityKey struct{}

// refreshTokenKey is a context key type for storing the presented refresh token.
type refreshTokenKey struct{}

// WithIdentity stores an authenticated identity in the context.
// This is typically called by the access token middleware after successful verification.
func WithIdentity(ctx context.Context, identity *authDomain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentity retrieves an authenticated identity from the context.
// Returns (identity, true) if present, or (nil, false) if no identity was set.
func GetIdentity(ctx context.Context) (*authDomain.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*authDomain.Identity)
	return identity, ok
}

// WithRefreshToken stores the presented refresh token in the context.
// This is typically called by the refresh token middleware; the session use
// case performs the actual membership and signature checks.
func WithRefreshToken(ctx context.Context, plainToken string) context.Context {
	return context.WithValue(ctx, refreshTokenKey{}, plainToken)
}

// GetRefreshToken retrieves the presented refresh token from the context.
// Returns (token, true) if present, or ("", false) if no token was set.
func GetRefreshToken(ctx context.Context) (string, bool) {
	plainToken, ok := ctx.Value(refreshTokenKey{}).(string)
	return plainToken, ok
}
