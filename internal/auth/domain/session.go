// Package domain defines session and token domain models for employee authentication.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TokenKind distinguishes the two token types minted for a session.
type TokenKind string

const (
	// AccessToken is the short-lived bearer token sent in the Authorization header.
	AccessToken TokenKind = "access"

	// RefreshToken is the long-lived token stored in an HTTP-only cookie and
	// tracked server-side per employee.
	RefreshToken TokenKind = "refresh"
)

// Identity is the authenticated principal carried by a verified token.
type Identity struct {
	EmployeeID uuid.UUID
	Email      string
}

// TokenPair holds the two tokens minted on registration and login.
type TokenPair struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresIn  time.Duration
	RefreshTokenExpiresIn time.Duration
}

// RegisterInput holds the fields required to register a new employee.
type RegisterInput struct {
	Name          string
	Age           int
	StillEmployee bool
	Email         string
	Password      string
}

// LoginInput holds the credentials presented at login.
type LoginInput struct {
	Email    string
	Password string
}
