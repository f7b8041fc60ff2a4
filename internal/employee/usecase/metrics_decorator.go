package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/employees/internal/employee/domain"
	"github.com/allisson/employees/internal/metrics"
)

// employeeUseCaseWithMetrics decorates EmployeeUseCase with metrics instrumentation.
type employeeUseCaseWithMetrics struct {
	next    EmployeeUseCase
	metrics metrics.BusinessMetrics
}

// NewEmployeeUseCaseWithMetrics wraps an EmployeeUseCase with metrics recording.
func NewEmployeeUseCaseWithMetrics(useCase EmployeeUseCase, m metrics.BusinessMetrics) EmployeeUseCase {
	return &employeeUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for employee creation operations.
func (e *employeeUseCaseWithMetrics) Create(
	ctx context.Context,
	input *domain.CreateEmployeeInput,
) (*domain.Employee, error) {
	start := time.Now()
	employee, err := e.next.Create(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	e.metrics.RecordOperation(ctx, "employee", "create", status)
	e.metrics.RecordDuration(ctx, "employee", "create", time.Since(start), status)

	return employee, err
}

// Get records metrics for employee retrieval operations.
func (e *employeeUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	start := time.Now()
	employee, err := e.next.Get(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	e.metrics.RecordOperation(ctx, "employee", "get", status)
	e.metrics.RecordDuration(ctx, "employee", "get", time.Since(start), status)

	return employee, err
}

// List records metrics for employee list operations.
func (e *employeeUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*domain.Employee, error) {
	start := time.Now()
	employees, err := e.next.List(ctx, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	e.metrics.RecordOperation(ctx, "employee", "list", status)
	e.metrics.RecordDuration(ctx, "employee", "list", time.Since(start), status)

	return employees, err
}

// Update records metrics for employee update operations.
func (e *employeeUseCaseWithMetrics) Update(
	ctx context.Context,
	id uuid.UUID,
	input *domain.UpdateEmployeeInput,
) (*domain.Employee, error) {
	start := time.Now()
	employee, err := e.next.Update(ctx, id, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	e.metrics.RecordOperation(ctx, "employee", "update", status)
	e.metrics.RecordDuration(ctx, "employee", "update", time.Since(start), status)

	return employee, err
}

// Delete records metrics for employee delete operations.
func (e *employeeUseCaseWithMetrics) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := e.next.Delete(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	e.metrics.RecordOperation(ctx, "employee", "delete", status)
	e.metrics.RecordDuration(ctx, "employee", "delete", time.Since(start), status)

	return err
}
