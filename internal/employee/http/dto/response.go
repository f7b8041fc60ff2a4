// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	"github.com/allisson/employees/internal/employee/domain"
)

// EmployeeResponse represents an employee in API responses.
// This is the sanitized projection: the password hash and refresh token set
// are never serialized.
type EmployeeResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Age           int       `json:"age"`
	StillEmployee bool      `json:"still_employee"`
	Email         string    `json:"email"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MapEmployeeToResponse converts a domain employee to an API response.
func MapEmployeeToResponse(employee *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:            employee.ID.String(),
		Name:          employee.Name,
		Age:           employee.Age,
		StillEmployee: employee.StillEmployee,
		Email:         employee.Email,
		CreatedAt:     employee.CreatedAt,
		UpdatedAt:     employee.UpdatedAt,
	}
}

// ListEmployeesResponse represents a paginated list of employees in API responses.
type ListEmployeesResponse struct {
	Data []EmployeeResponse `json:"data"`
}

// MapEmployeesToListResponse converts a slice of domain employees to a list API response.
func MapEmployeesToListResponse(employees []*domain.Employee) ListEmployeesResponse {
	employeeResponses := make([]EmployeeResponse, 0, len(employees))
	for _, employee := range employees {
		employeeResponses = append(employeeResponses, MapEmployeeToResponse(employee))
	}
	return ListEmployeesResponse{
		Data: employeeResponses,
	}
}
