// Package domain defines the core employee domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/employees/internal/errors"
)

// Employee represents an employee record in the system.
//
// PasswordHash never holds a plaintext password: it is written exclusively by
// the password hasher when the secret is first set or changed. The set of
// active refresh tokens lives in its own table and is reachable only through
// the repository's token primitives, so it can never leak through a read of
// the record itself.
type Employee struct {
	ID            uuid.UUID
	Name          string
	Age           int
	StillEmployee bool
	Email         string
	PasswordHash  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Domain-specific errors for employee operations.
var (
	// ErrEmployeeNotFound indicates the requested employee does not exist.
	ErrEmployeeNotFound = errors.Wrap(errors.ErrNotFound, "employee not found")

	// ErrEmployeeAlreadyExists indicates an employee with the same email already exists.
	ErrEmployeeAlreadyExists = errors.Wrap(errors.ErrConflict, "employee already registered")
)

// CreateEmployeeInput contains the fields for creating an employee record
// directly, outside the registration flow.
type CreateEmployeeInput struct {
	Name          string
	Age           int
	StillEmployee bool
	Email         string
	Password      string
}

// UpdateEmployeeInput contains the mutable fields for updating an existing
// employee. Nil fields are left unchanged. Password, when set, is re-hashed
// before storage.
type UpdateEmployeeInput struct {
	Name          *string
	Age           *int
	StillEmployee *bool
	Email         *string
	Password      *string
}
