// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/employees/internal/validation"
)

// RegisterRequest contains the parameters for registering a new employee.
type RegisterRequest struct {
	Name          string `json:"name"`
	Age           int    `json:"age"`
	StillEmployee bool   `json:"still_employee"`
	Email         string `json:"email"`
	Password      string `json:"password"`
}

// Validate checks if the register request is valid.
func (r *RegisterRequest) Validate() error {
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

// LoginRequest contains the credentials presented at login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks if the login request is valid.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required,
			customValidation.Email,
		),
		validation.Field(&r.Password,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}
