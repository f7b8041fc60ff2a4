// Package usecase defines business logic interfaces for employee record management.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/employees/internal/employee/domain"
)

// EmployeeRepository defines persistence operations for employee records.
// Implementations must support transaction-aware operations via context propagation.
type EmployeeRepository interface {
	// Create stores a new employee. Returns ErrEmployeeAlreadyExists when the
	// email is already registered.
	Create(ctx context.Context, employee *domain.Employee) error

	// GetByID retrieves an employee by ID. Returns ErrEmployeeNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)

	// List retrieves employees ordered by creation time with offset/limit pagination.
	List(ctx context.Context, offset, limit int) ([]*domain.Employee, error)

	// Update modifies an existing employee. Returns ErrEmployeeNotFound if not found.
	Update(ctx context.Context, employee *domain.Employee) error

	// Delete removes an employee. Returns ErrEmployeeNotFound if not found.
	Delete(ctx context.Context, id uuid.UUID) error
}

// EmployeeUseCase defines business logic operations for managing employee records.
type EmployeeUseCase interface {
	// Create stores a new employee record with a hashed password.
	// Unlike registration, no session is opened for the new employee.
	//
	// Returns ErrEmployeeAlreadyExists when the email is already registered.
	Create(ctx context.Context, input *domain.CreateEmployeeInput) (*domain.Employee, error)

	// Get retrieves an employee by ID. Returns ErrEmployeeNotFound if not found.
	Get(ctx context.Context, id uuid.UUID) (*domain.Employee, error)

	// List retrieves employees ordered by creation time with offset/limit pagination.
	List(ctx context.Context, offset, limit int) ([]*domain.Employee, error)

	// Update applies the non-nil fields of the input to an existing employee.
	// A new password is re-hashed before storage; the stored hash is otherwise
	// left untouched. Returns the updated record.
	//
	// Returns ErrEmployeeNotFound if the employee does not exist and
	// ErrEmployeeAlreadyExists when an email change collides with another account.
	Update(ctx context.Context, id uuid.UUID, input *domain.UpdateEmployeeInput) (*domain.Employee, error)

	// Delete removes an employee and all their active sessions.
	// Returns ErrEmployeeNotFound if the employee does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
