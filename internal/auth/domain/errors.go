package domain

import (
	"github.com/allisson/employees/internal/errors"
)

// Authentication and session errors.
var (
	// ErrRefreshTokenMissing indicates the request carried no refresh token cookie.
	ErrRefreshTokenMissing = errors.Wrap(errors.ErrUnauthorized, "refresh token missing")

	// ErrRefreshTokenInvalid indicates the presented refresh token is not
	// recognized, failed signature verification, or has expired.
	ErrRefreshTokenInvalid = errors.Wrap(errors.ErrForbidden, "refresh token invalid")

	// ErrAccessTokenMissing indicates the request carried no bearer token.
	ErrAccessTokenMissing = errors.Wrap(errors.ErrUnauthorized, "access token missing")

	// ErrAccessTokenInvalid indicates the presented bearer token failed verification.
	ErrAccessTokenInvalid = errors.Wrap(errors.ErrForbidden, "access token invalid")
)
