// Package http provides HTTP handlers for employee record management.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/employees/internal/employee/domain"
	"github.com/allisson/employees/internal/employee/http/dto"
	"github.com/allisson/employees/internal/httputil"

	employeeUseCase "github.com/allisson/employees/internal/employee/usecase"
	customValidation "github.com/allisson/employees/internal/validation"
)

// EmployeeHandler handles HTTP requests for employee record operations.
// All routes it serves sit behind the access token middleware.
type EmployeeHandler struct {
	employeeUseCase employeeUseCase.EmployeeUseCase
	logger          *slog.Logger
}

// NewEmployeeHandler creates a new employee handler with required dependencies.
func NewEmployeeHandler(
	employeeUseCase employeeUseCase.EmployeeUseCase,
	logger *slog.Logger,
) *EmployeeHandler {
	return &EmployeeHandler{
		employeeUseCase: employeeUseCase,
		logger:          logger,
	}
}

// CreateHandler stores a new employee record without opening a session.
// POST /api/v1/save - Requires a valid access token.
// Returns 201 Created with the sanitized record.
func (h *EmployeeHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateEmployeeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &domain.CreateEmployeeInput{
		Name:          req.Name,
		Age:           req.Age,
		StillEmployee: req.StillEmployee,
		Email:         req.Email,
		Password:      req.Password,
	}

	employee, err := h.employeeUseCase.Create(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapEmployeeToResponse(employee))
}

// GetHandler retrieves an employee record by ID.
// GET /api/v1/employees/:id - Requires a valid access token.
// Returns 200 OK with the sanitized record.
func (h *EmployeeHandler) GetHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid id format: must be a valid UUID"),
			h.logger)
		return
	}

	employee, err := h.employeeUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEmployeeToResponse(employee))
}

// ListHandler retrieves employee records with pagination support.
// GET /api/v1/employees?offset=0&limit=50 - Requires a valid access token.
// Returns 200 OK with the sanitized list.
func (h *EmployeeHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	employees, err := h.employeeUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEmployeesToListResponse(employees))
}

// UpdateHandler applies a partial update to an employee record.
// PUT /api/v1/employees - Requires a valid access token. The target record is
// identified by the ID inside the payload.
// Returns 200 OK with the updated sanitized record.
func (h *EmployeeHandler) UpdateHandler(c *gin.Context) {
	var req dto.UpdateEmployeeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid id format: must be a valid UUID"),
			h.logger)
		return
	}

	input := &domain.UpdateEmployeeInput{
		Name:          req.Name,
		Age:           req.Age,
		StillEmployee: req.StillEmployee,
		Email:         req.Email,
		Password:      req.Password,
	}

	employee, err := h.employeeUseCase.Update(c.Request.Context(), id, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEmployeeToResponse(employee))
}

// DeleteHandler removes an employee record and all its active sessions.
// DELETE /api/v1/employees/:id - Requires a valid access token.
// Returns 204 No Content.
func (h *EmployeeHandler) DeleteHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid id format: must be a valid UUID"),
			h.logger)
		return
	}

	if err := h.employeeUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
