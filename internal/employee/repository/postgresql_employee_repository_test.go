package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/employees/internal/employee/domain"
	"github.com/allisson/employees/internal/testutil"

	apperrors "github.com/allisson/employees/internal/errors"
)

func newTestEmployee(email string) *domain.Employee {
	return &domain.Employee{
		ID:            uuid.Must(uuid.NewV7()),
		Name:          "John Doe",
		Age:           35,
		StillEmployee: true,
		Email:         email,
		PasswordHash:  "hashed_password",
	}
}

func TestNewPostgreSQLEmployeeRepository(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewPostgreSQLEmployeeRepository(db)
	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestPostgreSQLEmployeeRepository_Create(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLEmployeeRepository(db)
	ctx := context.Background()

	employee := newTestEmployee("john@example.com")
	err := repo.Create(ctx, employee)
	assert.NoError(t, err)

	// Verify the employee was created
	created, err := repo.GetByID(ctx, employee.ID)
	assert.NoError(t, err)
	assert.Equal(t, employee.ID, created.ID)
	assert.Equal(t, employee.Name, created.Name)
	assert.Equal(t, employee.Age, created.Age)
	assert.Equal(t, employee.StillEmployee, created.StillEmployee)
	assert.Equal(t, employee.Email, created.Email)
	assert.Equal(t, employee.PasswordHash, created.PasswordHash)
	assert.False(t, created.CreatedAt.IsZero())
	assert.False(t, created.UpdatedAt.IsZero())
}

func TestPostgreSQLEmployeeRepository_Create_DuplicateEmail(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLEmployeeRepository(db)
	ctx := context.Background()

	err := repo.Create(ctx, newTestEmployee("john@example.com"))
	require.NoError(t, err)

	err = repo.Create(ctx, newTestEmployee("john@example.com"))
	assert.Error(t, err)
	assert.True(t, apperrors.Is(err, domain.ErrEmployeeAlreadyExists))
}

func TestPostgreSQLEmployeeRepository_GetByID_NotFound(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLEmployeeRepository(db)
	ctx := context.Background()

	employee, err := repo.GetByID(ctx, uuid.Must(uuid.NewV7()))
	assert.Error(t, err)
	assert.Nil(t, employee)
	assert.True(t, apperrors.Is(err, domain.ErrEmployeeNotFound))
}

func TestPostgreSQLEmployeeRepository_GetByEmail(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLEmployeeRepository(db)
	ctx := context.Background()

	expected := newTestEmployee("jane@example.com")
	err := repo.Create(ctx, expected)
	require.NoError(t, err)

	employee, err := repo.GetByEmail(ctx, "jane@example.com")
	assert.NoError(t, err)
	assert.NotNil(t, employee)
	assert.Equal(t, expected.ID, employee.ID)
	assert.Equal(t, expected.Email, employee.Email)
}

func TestPostgreSQLEmployeeRepository_GetByEmail_NotFound(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLEmployeeRepository(db)
	ctx := context.Background()

	employee, err := repo.GetByEmail(ctx, "notfound@example.com")
	assert.Error(t, err)
	assert.Nil(t, employee)
	assert.True(t, apperrors.Is(err, domain.ErrEmployeeNotFound))
}

func TestPostgreSQLEmployeeRepository_List(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLEmployeeRepository(db)
	ctx := context.Background()

	first := newTestEmployee("first@example.com")
	second := newTestEmployee("second@example.com")
	third := newTestEmployee("third@example.com")
	for _, employee := range []*domain.Employee{first, second, third} {
		require.NoError(t, repo.Create(ctx, employee))
	}

	// First page
	employees, err := repo.List(ctx, 0, 2)
	assert.NoError(t, err)
	require.Len(t, employees, 2)
	assert.Equal(t, first.ID, employees[0].ID)
	assert.Equal(t, second.ID, employees[1].ID)

	// Second page
	employees, err = repo.List(ctx, 2, 2)
	assert.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, third.ID, employees[0].ID)

	// Past the end
	employees, err = repo.List(ctx, 10, 2)
	assert.NoError(t, err)
	assert.Empty(t, employees)
}

func TestPostgreSQLEmployeeRepository_Update(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLEmployeeRepository(db)
	ctx := context.Background()

	employee := newTestEmployee("john@example.com")
	require.NoError(t, repo.Create(ctx, employee))

	employee.Name = "John Updated"
	employee.Age = 36
	employee.StillEmployee = false
	err := repo.Update(ctx, employee)
	assert.NoError(t, err)

	updated, err := repo.GetByID(ctx, employee.ID)
	require.NoError(t, err)
	assert.Equal(t, "John Updated", updated.Name)
	assert.Equal(t, 36, updated.Age)
	assert.False(t, updated.StillEmployee)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt) || updated.UpdatedAt.Equal(updated.CreatedAt))
}

func TestPostgreSQLEmployeeRepository_Update_NotFound(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLEmployeeRepository(db)
	ctx := context.Background()

	err := repo.Update(ctx, newTestEmployee("ghost@example.com"))
	assert.Error(t, err)
	assert.True(t, apperrors.Is(err, domain.ErrEmployeeNotFound))
}

func TestPostgreSQLEmployeeRepository_Update_DuplicateEmail(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLEmployeeRepository(db)
	ctx := context.Background()

	first := newTestEmployee("first@example.com")
	second := newTestEmployee("second@example.com")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	second.Email = "first@example.com"
	err := repo.Update(ctx, second)
	assert.Error(t, err)
	assert.True(t, apperrors.Is(err, domain.ErrEmployeeAlreadyExists))
}

func TestPostgreSQLEmployeeRepository_Delete(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLEmployeeRepository(db)
	ctx := context.Background()

	employee := newTestEmployee("john@example.com")
	require.NoError(t, repo.Create(ctx, employee))

	err := repo.Delete(ctx, employee.ID)
	assert.NoError(t, err)

	_, err = repo.GetByID(ctx, employee.ID)
	assert.True(t, apperrors.Is(err, domain.ErrEmployeeNotFound))
}

func TestPostgreSQLEmployeeRepository_Delete_NotFound(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLEmployeeRepository(db)
	ctx := context.Background()

	err := repo.Delete(ctx, uuid.Must(uuid.NewV7()))
	assert.Error(t, err)
	assert.True(t, apperrors.Is(err, domain.ErrEmployeeNotFound))
}

func TestPostgreSQLEmployeeRepository_RefreshTokens(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLEmployeeRepository(db)
	ctx := context.Background()

	employee := newTestEmployee("john@example.com")
	require.NoError(t, repo.Create(ctx, employee))

	// Add two tokens
	err := repo.AddRefreshToken(ctx, employee.ID, "token-hash-1")
	assert.NoError(t, err)
	err = repo.AddRefreshToken(ctx, employee.ID, "token-hash-2")
	assert.NoError(t, err)

	count, err := repo.CountRefreshTokens(ctx, employee.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, count)

	// Lookup by token hash
	found, err := repo.GetByRefreshToken(ctx, "token-hash-1")
	assert.NoError(t, err)
	assert.Equal(t, employee.ID, found.ID)

	// Remove one token, the other stays active
	err = repo.RemoveRefreshToken(ctx, "token-hash-1")
	assert.NoError(t, err)

	_, err = repo.GetByRefreshToken(ctx, "token-hash-1")
	assert.True(t, apperrors.Is(err, domain.ErrEmployeeNotFound))

	found, err = repo.GetByRefreshToken(ctx, "token-hash-2")
	assert.NoError(t, err)
	assert.Equal(t, employee.ID, found.ID)

	// Removing an unknown token is a no-op
	err = repo.RemoveRefreshToken(ctx, "unknown-token-hash")
	assert.NoError(t, err)
}

func TestPostgreSQLEmployeeRepository_RefreshTokens_CascadeDelete(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLEmployeeRepository(db)
	ctx := context.Background()

	employee := newTestEmployee("john@example.com")
	require.NoError(t, repo.Create(ctx, employee))
	require.NoError(t, repo.AddRefreshToken(ctx, employee.ID, "token-hash-1"))

	// Deleting the employee removes their tokens via cascade
	require.NoError(t, repo.Delete(ctx, employee.ID))

	_, err := repo.GetByRefreshToken(ctx, "token-hash-1")
	assert.True(t, apperrors.Is(err, domain.ErrEmployeeNotFound))
}

func TestPostgreSQLEmployeeRepository_DeleteRefreshTokensOlderThan(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLEmployeeRepository(db)
	ctx := context.Background()

	employee := newTestEmployee("john@example.com")
	require.NoError(t, repo.Create(ctx, employee))
	require.NoError(t, repo.AddRefreshToken(ctx, employee.ID, "token-hash-1"))

	// Cutoff in the past removes nothing
	count, err := repo.DeleteRefreshTokensOlderThan(ctx, time.Now().Add(-24*time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// Cutoff in the future removes the token
	count, err = repo.DeleteRefreshTokensOlderThan(ctx, time.Now().Add(24*time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestIsPostgreSQLUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "duplicate key error",
			err:  assert.AnError,
			want: false,
		},
		{
			name: "pq duplicate key message",
			err:  apperrors.New("pq: duplicate key value violates unique constraint \"employees_email_idx\""),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isPostgreSQLUniqueViolation(tt.err))
		})
	}
}
