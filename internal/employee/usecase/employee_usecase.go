// Package usecase implements business logic orchestration for employee records.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authService "github.com/allisson/employees/internal/auth/service"
	"github.com/allisson/employees/internal/database"
	"github.com/allisson/employees/internal/employee/domain"

	authUsecase "github.com/allisson/employees/internal/auth/usecase"
)

// employeeUseCase implements EmployeeUseCase for managing employee records.
type employeeUseCase struct {
	txManager       database.TxManager
	employeeRepo    EmployeeRepository
	passwordService authService.PasswordService
}

// NewEmployeeUseCase creates a new EmployeeUseCase.
func NewEmployeeUseCase(
	txManager database.TxManager,
	employeeRepo EmployeeRepository,
	passwordService authService.PasswordService,
) EmployeeUseCase {
	return &employeeUseCase{
		txManager:       txManager,
		employeeRepo:    employeeRepo,
		passwordService: passwordService,
	}
}

// Create stores a new employee record with a hashed password.
func (e *employeeUseCase) Create(
	ctx context.Context,
	input *domain.CreateEmployeeInput,
) (*domain.Employee, error) {
	passwordHash, err := e.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	employee := &domain.Employee{
		ID:            uuid.Must(uuid.NewV7()),
		Name:          input.Name,
		Age:           input.Age,
		StillEmployee: input.StillEmployee,
		Email:         authUsecase.NormalizeEmail(input.Email),
		PasswordHash:  passwordHash,
	}

	if err := e.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}

	return employee, nil
}

// Get retrieves an employee by ID.
func (e *employeeUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	return e.employeeRepo.GetByID(ctx, id)
}

// List retrieves employees ordered by creation time with offset/limit pagination.
func (e *employeeUseCase) List(ctx context.Context, offset, limit int) ([]*domain.Employee, error) {
	return e.employeeRepo.List(ctx, offset, limit)
}

// Update applies the non-nil fields of the input to an existing employee.
// The read and write run in one transaction so concurrent updates to the same
// record cannot interleave.
func (e *employeeUseCase) Update(
	ctx context.Context,
	id uuid.UUID,
	input *domain.UpdateEmployeeInput,
) (*domain.Employee, error) {
	var updated *domain.Employee

	err := e.txManager.WithTx(ctx, func(ctx context.Context) error {
		employee, err := e.employeeRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if input.Name != nil {
			employee.Name = *input.Name
		}
		if input.Age != nil {
			employee.Age = *input.Age
		}
		if input.StillEmployee != nil {
			employee.StillEmployee = *input.StillEmployee
		}
		if input.Email != nil {
			employee.Email = authUsecase.NormalizeEmail(*input.Email)
		}
		if input.Password != nil {
			// Only a newly supplied password is hashed, the stored hash is
			// never re-hashed.
			passwordHash, err := e.passwordService.HashPassword(*input.Password)
			if err != nil {
				return err
			}
			employee.PasswordHash = passwordHash
		}

		if err := e.employeeRepo.Update(ctx, employee); err != nil {
			return err
		}

		updated = employee
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes an employee and, via cascade, all their active sessions.
func (e *employeeUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return e.employeeRepo.Delete(ctx, id)
}
