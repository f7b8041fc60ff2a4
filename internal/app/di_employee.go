package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	authUseCase "github.com/allisson/employees/internal/auth/usecase"
	employeeHTTP "github.com/allisson/employees/internal/employee/http"
	"github.com/allisson/employees/internal/employee/repository"
	employeeUseCase "github.com/allisson/employees/internal/employee/usecase"
)

// EmployeeRepository combines the persistence surface used by the session and
// employee record use cases plus the refresh token maintenance operations.
// Both concrete repositories implement it.
type EmployeeRepository interface {
	authUseCase.EmployeeRepository
	employeeUseCase.EmployeeRepository

	// CountRefreshTokens returns the number of active refresh tokens for an employee.
	CountRefreshTokens(ctx context.Context, employeeID uuid.UUID) (int, error)

	// DeleteRefreshTokensOlderThan removes refresh tokens created before the cutoff.
	DeleteRefreshTokensOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// EmployeeRepository returns the employee repository based on the database driver.
func (c *Container) EmployeeRepository() (EmployeeRepository, error) {
	var err error
	c.employeeRepoInit.Do(func() {
		c.employeeRepo, err = c.initEmployeeRepository()
		if err != nil {
			c.initErrors["employeeRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["employeeRepo"]; exists {
		return nil, storedErr
	}
	return c.employeeRepo, nil
}

// EmployeeUseCase returns the employee record use case.
func (c *Container) EmployeeUseCase() (employeeUseCase.EmployeeUseCase, error) {
	var err error
	c.employeeUseCaseInit.Do(func() {
		c.employeeUseCase, err = c.initEmployeeUseCase()
		if err != nil {
			c.initErrors["employeeUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["employeeUseCase"]; exists {
		return nil, storedErr
	}
	return c.employeeUseCase, nil
}

// EmployeeHandler returns the HTTP handler for employee record operations.
func (c *Container) EmployeeHandler() (*employeeHTTP.EmployeeHandler, error) {
	var err error
	c.employeeHandlerInit.Do(func() {
		c.employeeHandler, err = c.initEmployeeHandler()
		if err != nil {
			c.initErrors["employeeHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["employeeHandler"]; exists {
		return nil, storedErr
	}
	return c.employeeHandler, nil
}

// initEmployeeRepository creates the employee repository based on the database driver.
func (c *Container) initEmployeeRepository() (EmployeeRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for employee repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return repository.NewPostgreSQLEmployeeRepository(db), nil
	case "mysql":
		return repository.NewMySQLEmployeeRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initEmployeeUseCase creates the employee use case with all its dependencies.
func (c *Container) initEmployeeUseCase() (employeeUseCase.EmployeeUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for employee use case: %w", err)
	}

	employeeRepo, err := c.EmployeeRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get employee repository for employee use case: %w", err)
	}

	baseUseCase := employeeUseCase.NewEmployeeUseCase(txManager, employeeRepo, c.PasswordService())

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for employee use case: %w", err)
		}
		return employeeUseCase.NewEmployeeUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initEmployeeHandler creates the employee HTTP handler.
func (c *Container) initEmployeeHandler() (*employeeHTTP.EmployeeHandler, error) {
	useCase, err := c.EmployeeUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get employee use case for employee handler: %w", err)
	}

	return employeeHTTP.NewEmployeeHandler(useCase, c.Logger()), nil
}
