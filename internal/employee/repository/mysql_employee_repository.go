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

// MySQLEmployeeRepository handles employee persistence for MySQL.
type MySQLEmployeeRepository struct {
	db *sql.DB
}

// NewMySQLEmployeeRepository creates a new MySQLEmployeeRepository.
func NewMySQLEmployeeRepository(db *sql.DB) *MySQLEmployeeRepository {
	return &MySQLEmployeeRepository{
		db: db,
	}
}

// Create inserts a new employee.
func (r *MySQLEmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO employees (id, name, age, still_employee, email, password_hash, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())`

	_, err := querier.ExecContext(
		ctx,
		query,
		employee.ID.String(),
		employee.Name,
		employee.Age,
		employee.StillEmployee,
		employee.Email,
		employee.PasswordHash,
	)
	if err != nil {
		if isMySQLDuplicateEntry(err) {
			return domain.ErrEmployeeAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create employee")
	}
	return nil
}

// GetByID retrieves an employee by ID.
func (r *MySQLEmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	var employee domain.Employee
	var rawID string
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, age, still_employee, email, password_hash, created_at, updated_at
			  FROM employees WHERE id = ?`

	err := querier.QueryRowContext(ctx, query, id.String()).Scan(
		&rawID,
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

	employee.ID, err = uuid.Parse(rawID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse employee id")
	}

	return &employee, nil
}

// GetByEmail retrieves an employee by their normalized email.
func (r *MySQLEmployeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	var employee domain.Employee
	var rawID string
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, age, still_employee, email, password_hash, created_at, updated_at
			  FROM employees WHERE email = ?`

	err := querier.QueryRowContext(ctx, query, email).Scan(
		&rawID,
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

	employee.ID, err = uuid.Parse(rawID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse employee id")
	}

	return &employee, nil
}

// List retrieves employees ordered by creation time with offset/limit pagination.
func (r *MySQLEmployeeRepository) List(ctx context.Context, offset, limit int) ([]*domain.Employee, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, age, still_employee, email, password_hash, created_at, updated_at
			  FROM employees ORDER BY created_at LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list employees")
	}
	defer func() { _ = rows.Close() }()

	var employees []*domain.Employee
	for rows.Next() {
		var employee domain.Employee
		var rawID string
		if err := rows.Scan(
			&rawID,
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
		employee.ID, err = uuid.Parse(rawID)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to parse employee id")
		}
		employees = append(employees, &employee)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate employees")
	}

	return employees, nil
}

// Update persists changes to an existing employee.
func (r *MySQLEmployeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE employees
			  SET name = ?,
			      age = ?,
			      still_employee = ?,
			      email = ?,
			      password_hash = ?,
			      updated_at = NOW()
			  WHERE id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		employee.Name,
		employee.Age,
		employee.StillEmployee,
		employee.Email,
		employee.PasswordHash,
		employee.ID.String(),
	)
	if err != nil {
		if isMySQLDuplicateEntry(err) {
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
func (r *MySQLEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id.String())
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
func (r *MySQLEmployeeRepository) AddRefreshToken(
	ctx context.Context,
	employeeID uuid.UUID,
	tokenHash string,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO employee_refresh_tokens (token_hash, employee_id, created_at)
			  VALUES (?, ?, NOW())`

	if _, err := querier.ExecContext(ctx, query, tokenHash, employeeID.String()); err != nil {
		return apperrors.Wrap(err, "failed to add refresh token")
	}
	return nil
}

// RemoveRefreshToken removes a refresh token hash from the active set.
// Removing a hash that is not present is a no-op.
func (r *MySQLEmployeeRepository) RemoveRefreshToken(ctx context.Context, tokenHash string) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM employee_refresh_tokens WHERE token_hash = ?`

	if _, err := querier.ExecContext(ctx, query, tokenHash); err != nil {
		return apperrors.Wrap(err, "failed to remove refresh token")
	}
	return nil
}

// GetByRefreshToken retrieves the employee whose active token set contains the
// given refresh token hash. Returns ErrEmployeeNotFound when no employee holds it.
func (r *MySQLEmployeeRepository) GetByRefreshToken(
	ctx context.Context,
	tokenHash string,
) (*domain.Employee, error) {
	var employee domain.Employee
	var rawID string
	querier := database.GetTx(ctx, r.db)

	query := `SELECT e.id, e.name, e.age, e.still_employee, e.email, e.password_hash, e.created_at, e.updated_at
			  FROM employees e
			  JOIN employee_refresh_tokens t ON t.employee_id = e.id
			  WHERE t.token_hash = ?`

	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&rawID,
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

	employee.ID, err = uuid.Parse(rawID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse employee id")
	}

	return &employee, nil
}

// CountRefreshTokens returns the number of active refresh tokens for an employee.
func (r *MySQLEmployeeRepository) CountRefreshTokens(
	ctx context.Context,
	employeeID uuid.UUID,
) (int, error) {
	querier := database.GetTx(ctx, r.db)

	var count int
	query := `SELECT COUNT(*) FROM employee_refresh_tokens WHERE employee_id = ?`

	if err := querier.QueryRowContext(ctx, query, employeeID.String()).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count refresh tokens")
	}
	return count, nil
}

// DeleteRefreshTokensOlderThan removes stored refresh tokens created before the cutoff.
func (r *MySQLEmployeeRepository) DeleteRefreshTokensOlderThan(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(
		ctx,
		`DELETE FROM employee_refresh_tokens WHERE created_at < ?`,
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

// isMySQLDuplicateEntry checks if the error is a MySQL duplicate entry violation.
func isMySQLDuplicateEntry(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry ... for key ..."
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "error 1062")
}
