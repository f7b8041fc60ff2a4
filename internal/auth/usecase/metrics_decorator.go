package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/employees/internal/auth/domain"
	employeeDomain "github.com/allisson/employees/internal/employee/domain"
	"github.com/allisson/employees/internal/metrics"
)

// sessionUseCaseWithMetrics decorates SessionUseCase with metrics instrumentation.
type sessionUseCaseWithMetrics struct {
	next    SessionUseCase
	metrics metrics.BusinessMetrics
}

// NewSessionUseCaseWithMetrics wraps a SessionUseCase with metrics recording.
func NewSessionUseCaseWithMetrics(useCase SessionUseCase, m metrics.BusinessMetrics) SessionUseCase {
	return &sessionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Register records metrics for registration operations.
func (s *sessionUseCaseWithMetrics) Register(
	ctx context.Context,
	input *authDomain.RegisterInput,
) (*employeeDomain.Employee, *authDomain.TokenPair, error) {
	start := time.Now()
	employee, pair, err := s.next.Register(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "auth", "register", status)
	s.metrics.RecordDuration(ctx, "auth", "register", time.Since(start), status)

	return employee, pair, err
}

// Login records metrics for login operations.
func (s *sessionUseCaseWithMetrics) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.TokenPair, error) {
	start := time.Now()
	pair, err := s.next.Login(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "auth", "login", status)
	s.metrics.RecordDuration(ctx, "auth", "login", time.Since(start), status)

	return pair, err
}

// Refresh records metrics for token refresh operations.
func (s *sessionUseCaseWithMetrics) Refresh(
	ctx context.Context,
	plainRefreshToken string,
) (string, error) {
	start := time.Now()
	accessToken, err := s.next.Refresh(ctx, plainRefreshToken)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "auth", "refresh", status)
	s.metrics.RecordDuration(ctx, "auth", "refresh", time.Since(start), status)

	return accessToken, err
}

// Logout records metrics for logout operations.
func (s *sessionUseCaseWithMetrics) Logout(ctx context.Context, plainRefreshToken string) error {
	start := time.Now()
	err := s.next.Logout(ctx, plainRefreshToken)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "auth", "logout", status)
	s.metrics.RecordDuration(ctx, "auth", "logout", time.Since(start), status)

	return err
}
