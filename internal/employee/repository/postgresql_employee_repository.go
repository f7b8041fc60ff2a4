// Package repository provides data persistence implementations for employee entities.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/employees/internal/database"
	"github.com/allisson/employees/internal/employee/domain"

	apperrors "github.com/allisson/employees/internal/errors"
)

// PostgreSQLEmployeeRepository handles employee persistence for PostgreSQL.
//
// Refresh tokens are stored in the employee_refresh_tokens child table, so
// set-add and set-remove are single INSERT/DELETE statements. This avoids the
// lost-update race a read-modify-write of an array column would have under
// concurrent logins and logouts for the same employee.
type PostgreSQLEmployeeRepository struct {
	db *sql.DB
}

// NewPostgreSQLEmployeeRepository creates a new PostgreSQLEmployeeRepository.
func NewPostgreSQLEmployeeRepository(db *sql.DB) *PostgreSQLEmployeeRepository {
	return &PostgreSQLEmployeeRepository{
		db: db,
	}
}

// Create inserts a new employee.
func (r *PostgreSQLEmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO employees (id, name, age, still_employee, email, password_hash, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`

	_, err := querier.ExecContext(
		ctx,
		query,
		employee.ID,
		employee.Name,
		employee.Age,
		employee.StillEmployee,
		employee.Email,
		employee.PasswordHash,
	)
	if err != nil {
		// Check for unique constraint violation (duplicate email)
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrEmployeeAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create employee")
	}
	return nil
}

// GetByID retrieves an employee by ID.
func (r *PostgreSQLEmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	var employee domain.Employee
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, age, still_employee, email, password_hash, created_at, updated_at
			  FROM employees WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&employee.ID,
		&employee.Name,
		&employee.Age,
		&employee.StillEmployee,
		&employee.Email,
		&employee.PasswordHash,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get employee by id")
	}

	return &employee, nil
}

// GetByEmail retrieves an employee by their normalized email.
func (r *PostgreSQLEmployeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	var employee domain.Employee
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, age, still_employee, email, password_hash, created_at, updated_at
			  FROM employees WHERE email = $1`

	err := querier.QueryRowContext(ctx, query, email).Scan(
		&employee.ID,
		&employee.Name,
		&employee.Age,
		&employee.StillEmployee,
		&employee.Email,
		&employee.PasswordHash,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get employee by email")
	}

	return &employee, nil
}

// List retrieves employees ordered by creation time with offset/limit pagination.
func (r *PostgreSQLEmployeeRepository) List(ctx context.Context, offset, limit int) ([]*domain.Employee, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, age, still_employee, email, password_hash, created_at, updated_at
			  FROM employees ORDER BY created_at OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list employees")
	}
	defer func() { _ = rows.Close() }()

	var employees []*domain.Employee
	for rows.Next() {
		var employee domain.Employee
		if err := rows.Scan(
			&employee.ID,
			&employee.Name,
			&employee.Age,
			&employee.StillEmployee,
			&employee.Email,
			&employee.PasswordHash,
			&employee.CreatedAt,
			&employee.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan employee")
		}
		employees = append(employees, &employee)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate employees")
	}

	return employees, nil
}

// Update persists changes to an existing employee.
func (r *PostgreSQLEmployeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE employees
			  SET name = $1,
			      age = $2,
			      still_employee = $3,
			      email = $4,
			      password_hash = $5,
			      updated_at = NOW()
			  WHERE id = $6`

	result, err := querier.ExecContext(
		ctx,
		query,
		employee.Name,
		employee.Age,
		employee.StillEmployee,
		employee.Email,
		employee.PasswordHash,
		employee.ID,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrEmployeeAlreadyExists
		}
		return apperrors.Wrap(err, "failed to update employee")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check updated rows")
	}
	if rowsAffected == 0 {
		return domain.ErrEmployeeNotFound
	}

	return nil
}

// Delete removes an employee and, via cascade, all their refresh tokens.
func (r *PostgreSQLEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete employee")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check deleted rows")
	}
	if rowsAffected == 0 {
		return domain.ErrEmployeeNotFound
	}

	return nil
}

// AddRefreshToken adds a refresh token hash to the employee's active set.
// The insert is atomic, so concurrent logins never lose each other's tokens.
func (r *PostgreSQLEmployeeRepository) AddRefreshToken(
	ctx context.Context,
	employeeID uuid.UUID,
	tokenHash string,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO employee_refresh_tokens (token_hash, employee_id, created_at)
			  VALUES ($1, $2, NOW())`

	if _, err := querier.ExecContext(ctx, query, tokenHash, employeeID); err != nil {
		return apperrors.Wrap(err, "failed to add refresh token")
	}
	return nil
}

// RemoveRefreshToken removes a refresh token hash from the active set.
// Removing a hash that is not present is a no-op.
func (r *PostgreSQLEmployeeRepository) RemoveRefreshToken(ctx context.Context, tokenHash string) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM employee_refresh_tokens WHERE token_hash = $1`

	if _, err := querier.ExecContext(ctx, query, tokenHash); err != nil {
		return apperrors.Wrap(err, "failed to remove refresh token")
	}
	return nil
}

// GetByRefreshToken retrieves the employee whose active token set contains the
// given refresh token hash. Returns ErrEmployeeNotFound when no employee holds it.
func (r *PostgreSQLEmployeeRepository) GetByRefreshToken(
	ctx context.Context,
	tokenHash string,
) (*domain.Employee, error) {
	var employee domain.Employee
	querier := database.GetTx(ctx, r.db)

	query := `SELECT e.id, e.name, e.age, e.still_employee, e.email, e.password_hash, e.created_at, e.updated_at
			  FROM employees e
			  JOIN employee_refresh_tokens t ON t.employee_id = e.id
			  WHERE t.token_hash = $1`

	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&employee.ID,
		&employee.Name,
		&employee.Age,
		&employee.StillEmployee,
		&employee.Email,
		&employee.PasswordHash,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get employee by refresh token")
	}

	return &employee, nil
}

// CountRefreshTokens returns the number of active refresh tokens for an employee.
func (r *PostgreSQLEmployeeRepository) CountRefreshTokens(
	ctx context.Context,
	employeeID uuid.UUID,
) (int, error) {
	querier := database.GetTx(ctx, r.db)

	var count int
	query := `SELECT COUNT(*) FROM employee_refresh_tokens WHERE employee_id = $1`

	if err := querier.QueryRowContext(ctx, query, employeeID).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count refresh tokens")
	}
	return count, nil
}

// DeleteRefreshTokensOlderThan removes stored refresh tokens created before the
// cutoff. Tokens that old have outlived their signed lifetime and can never
// verify again, so keeping them only grows the table.
func (r *PostgreSQLEmployeeRepository) DeleteRefreshTokensOlderThan(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(
		ctx,
		`DELETE FROM employee_refresh_tokens WHERE created_at < $1`,
		cutoff,
	)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete stale refresh tokens")
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to check deleted rows")
	}
	return count, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" or "pq: duplicate key"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
