// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/employees/internal/validation"
)

// CreateEmployeeRequest contains the parameters for creating an employee record.
type CreateEmployeeRequest struct {
	Name          string `json:"name"`
	Age           int    `json:"age"`
	StillEmployee bool   `json:"still_employee"`
	Email         string `json:"email"`
	Password      string `json:"password"`
}

// Validate checks if the create employee request is valid.
func (r *CreateEmployeeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Age,
			validation.Required,
			validation.Min(1),
			validation.Max(150),
		),
		validation.Field(&r.Email,
			validation.Required,
			customValidation.Email,
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(6, 0),
		),
	)
}

// UpdateEmployeeRequest contains the parameters for updating an employee record.
// The target record is identified by the ID inside the payload. Nil fields are
// left unchanged.
type UpdateEmployeeRequest struct {
	ID            string  `json:"id"`
	Name          *string `json:"name"`
	Age           *int    `json:"age"`
	StillEmployee *bool   `json:"still_employee"`
	Email         *string `json:"email"`
	Password      *string `json:"password"`
}

// Validate checks if the update employee request is valid.
func (r *UpdateEmployeeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.Name,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Age,
			validation.Min(1),
			validation.Max(150),
		),
		validation.Field(&r.Email,
			customValidation.Email,
		),
		validation.Field(&r.Password,
			validation.Length(6, 0),
		),
	)
}
