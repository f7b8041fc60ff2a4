// Package service provides technical services for employee authentication.
//
// This package implements reusable services for password hashing and JWT
// token minting and verification using industry-standard cryptographic practices.
package service

import (
	"time"

	"github.com/allisson/employees/internal/auth/domain"
)

// TokenService defines operations for minting and verifying session tokens.
// Access and refresh tokens are signed with separate secrets, so a leaked
// access token can never be replayed as a refresh token or vice versa.
type TokenService interface {
	// IssueAccessToken mints a short-lived access token for the identity.
	IssueAccessToken(identity domain.Identity) (string, error)

	// IssueRefreshToken mints a long-lived refresh token for the identity.
	IssueRefreshToken(identity domain.Identity) (string, error)

	// VerifyAccessToken checks signature, expiry and token kind.
	// Returns ErrAccessTokenInvalid on any failure.
	VerifyAccessToken(token string) (*domain.Identity, error)

	// VerifyRefreshToken checks signature, expiry and token kind.
	// Returns ErrRefreshTokenInvalid on any failure.
	VerifyRefreshToken(token string) (*domain.Identity, error)

	// HashToken hashes a plain token using SHA-256.
	// Used to store and look up refresh tokens without persisting the plain value.
	HashToken(plainToken string) string

	// AccessTokenExpiration returns the configured access token lifetime.
	AccessTokenExpiration() time.Duration

	// RefreshTokenExpiration returns the configured refresh token lifetime.
	RefreshTokenExpiration() time.Duration
}

// PasswordService defines operations for password hashing and validation.
// Implementations must use an adaptive hashing algorithm (e.g., argon2, bcrypt).
type PasswordService interface {
	// HashPassword hashes a plain text password for storage.
	HashPassword(plainPassword string) (hashedPassword string, error error)

	// ComparePassword compares a plain text password against a stored hash.
	// Returns true if the password matches, false otherwise.
	// This is constant-time to prevent timing attacks.
	ComparePassword(plainPassword string, hashedPassword string) bool
}
