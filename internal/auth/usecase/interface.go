// Package usecase defines business logic interfaces for employee session operations.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/allisson/employees/internal/auth/domain"
	employeeDomain "github.com/allisson/employees/internal/employee/domain"
)

// EmployeeRepository defines the persistence operations session management needs.
// Implementations must support transaction-aware operations via context propagation.
type EmployeeRepository interface {
	// Create stores a new employee. Returns ErrEmployeeAlreadyExists when the
	// email is already registered.
	Create(ctx context.Context, employee *employeeDomain.Employee) error

	// GetByEmail retrieves an employee by their normalized email.
	// Returns ErrEmployeeNotFound if not found.
	GetByEmail(ctx context.Context, email string) (*employeeDomain.Employee, error)

	// AddRefreshToken adds a refresh token hash to the employee's active set.
	AddRefreshToken(ctx context.Context, employeeID uuid.UUID, tokenHash string) error

	// RemoveRefreshToken removes a refresh token hash from the active set.
	// Removing an absent hash is a no-op.
	RemoveRefreshToken(ctx context.Context, tokenHash string) error

	// GetByRefreshToken retrieves the employee whose active set contains the
	// given token hash. Returns ErrEmployeeNotFound if no employee holds it.
	GetByRefreshToken(ctx context.Context, tokenHash string) (*employeeDomain.Employee, error)
}

// SessionUseCase defines business logic operations for the employee session lifecycle.
type SessionUseCase interface {
	// Register creates a new employee account and opens a session for it.
	// The email is normalized before storage, the password is hashed, and a
	// fresh token pair is minted with the refresh token recorded server-side.
	//
	// Returns ErrEmployeeAlreadyExists when the email is already registered.
	Register(
		ctx context.Context,
		input *authDomain.RegisterInput,
	) (*employeeDomain.Employee, *authDomain.TokenPair, error)

	// Login authenticates an employee by email and password and opens a new
	// session. Each login adds a refresh token to the employee's active set,
	// so concurrent sessions on different devices stay independent.
	//
	// Returns ErrInvalidCredentials for both unknown emails and wrong
	// passwords to prevent account enumeration.
	Login(ctx context.Context, input *authDomain.LoginInput) (*authDomain.TokenPair, error)

	// Refresh exchanges a valid refresh token for a new access token.
	// The refresh token must be present in an employee's active set and pass
	// signature and expiry verification. Tokens that fail verification are
	// evicted from the set before the error is returned.
	//
	// Returns ErrRefreshTokenInvalid on any failure.
	Refresh(ctx context.Context, plainRefreshToken string) (accessToken string, err error)

	// Logout removes the refresh token from its employee's active set.
	// Unknown or already-removed tokens are tolerated, so logout is idempotent.
	Logout(ctx context.Context, plainRefreshToken string) error
}
