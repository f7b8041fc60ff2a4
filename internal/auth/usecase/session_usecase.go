// Package usecase implements business logic orchestration for employee sessions.
package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	authDomain "github.com/allisson/employees/internal/auth/domain"
	authService "github.com/allisson/employees/internal/auth/service"
	employeeDomain "github.com/allisson/employees/internal/employee/domain"

	apperrors "github.com/allisson/employees/internal/errors"
)

// sessionUseCase implements SessionUseCase for the employee session lifecycle.
type sessionUseCase struct {
	employeeRepo    EmployeeRepository
	tokenService    authService.TokenService
	passwordService authService.PasswordService
}

// NewSessionUseCase creates a new SessionUseCase.
func NewSessionUseCase(
	employeeRepo EmployeeRepository,
	tokenService authService.TokenService,
	passwordService authService.PasswordService,
) SessionUseCase {
	return &sessionUseCase{
		employeeRepo:    employeeRepo,
		tokenService:    tokenService,
		passwordService: passwordService,
	}
}

// NormalizeEmail lowercases and trims an email address. Registration and login
// both normalize, so case variants of one address always hit the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new employee account and opens a session for it.
func (s *sessionUseCase) Register(
	ctx context.Context,
	input *authDomain.RegisterInput,
) (*employeeDomain.Employee, *authDomain.TokenPair, error) {
	passwordHash, err := s.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, nil, err
	}

	employee := &employeeDomain.Employee{
		ID:            uuid.Must(uuid.NewV7()),
		Name:          input.Name,
		Age:           input.Age,
		StillEmployee: input.StillEmployee,
		Email:         NormalizeEmail(input.Email),
		PasswordHash:  passwordHash,
	}

	// The unique index on email is the single duplicate guard, so concurrent
	// registrations of the same address cannot both succeed.
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, nil, err
	}

	pair, err := s.openSession(ctx, employee)
	if err != nil {
		return nil, nil, err
	}

	return employee, pair, nil
}

// Login authenticates an employee and opens a new session.
func (s *sessionUseCase) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.TokenPair, error) {
	employee, err := s.employeeRepo.GetByEmail(ctx, NormalizeEmail(input.Email))
	if err != nil {
		// If employee not found, return generic error to prevent enumeration
		if errors.Is(err, employeeDomain.ErrEmployeeNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.passwordService.ComparePassword(input.Password, employee.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.openSession(ctx, employee)
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *sessionUseCase) Refresh(ctx context.Context, plainRefreshToken string) (string, error) {
	tokenHash := s.tokenService.HashToken(plainRefreshToken)

	// Membership in the active set is checked before the signature, so a token
	// revoked by logout fails even while its signature is still valid.
	employee, err := s.employeeRepo.GetByRefreshToken(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, employeeDomain.ErrEmployeeNotFound) {
			return "", authDomain.ErrRefreshTokenInvalid
		}
		return "", err
	}

	identity, err := s.tokenService.VerifyRefreshToken(plainRefreshToken)
	if err != nil {
		// The stored token can never verify again, evict it from the set.
		// Eviction failure is secondary to the verification failure.
		_ = s.employeeRepo.RemoveRefreshToken(ctx, tokenHash)
		return "", authDomain.ErrRefreshTokenInvalid
	}

	if identity.EmployeeID != employee.ID {
		return "", authDomain.ErrRefreshTokenInvalid
	}

	return s.tokenService.IssueAccessToken(*identity)
}

// Logout removes the refresh token from its employee's active set.
func (s *sessionUseCase) Logout(ctx context.Context, plainRefreshToken string) error {
	tokenHash := s.tokenService.HashToken(plainRefreshToken)
	return s.employeeRepo.RemoveRefreshToken(ctx, tokenHash)
}

// openSession mints a fresh token pair and records the refresh token hash.
func (s *sessionUseCase) openSession(
	ctx context.Context,
	employee *employeeDomain.Employee,
) (*authDomain.TokenPair, error) {
	identity := authDomain.Identity{
		EmployeeID: employee.ID,
		Email:      employee.Email,
	}

	accessToken, err := s.tokenService.IssueAccessToken(identity)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokenService.IssueRefreshToken(identity)
	if err != nil {
		return nil, err
	}

	tokenHash := s.tokenService.HashToken(refreshToken)
	if err := s.employeeRepo.AddRefreshToken(ctx, employee.ID, tokenHash); err != nil {
		return nil, err
	}

	return &authDomain.TokenPair{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresIn:  s.tokenService.AccessTokenExpiration(),
		RefreshTokenExpiresIn: s.tokenService.RefreshTokenExpiration(),
	}, nil
}
