package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	employeeDomain "github.com/allisson/employees/internal/employee/domain"
	employeeUseCase "github.com/allisson/employees/internal/employee/usecase"
)

// RunCreateEmployee creates a new employee record without opening a session.
// Outputs the sanitized record in either text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateEmployee(
	ctx context.Context,
	useCase employeeUseCase.EmployeeUseCase,
	logger *slog.Logger,
	name string,
	age int,
	stillEmployee bool,
	email string,
	password string,
	format string,
	io IOTuple,
) error {
	logger.Info("creating new employee", slog.String("email", email))

	input := &employeeDomain.CreateEmployeeInput{
		Name:          name,
		Age:           age,
		StillEmployee: stillEmployee,
		Email:         email,
		Password:      password,
	}

	employee, err := useCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}

	if format == "json" {
		outputCreateEmployeeJSON(employee, io)
	} else {
		outputCreateEmployeeText(employee, io)
	}

	logger.Info("employee created successfully",
		slog.String("employee_id", employee.ID.String()),
		slog.String("email", employee.Email),
	)

	return nil
}

// outputCreateEmployeeText outputs the result in human-readable text format.
func outputCreateEmployeeText(employee *employeeDomain.Employee, io IOTuple) {
	_, _ = fmt.Fprintln(io.Writer, "Employee created successfully!")
	_, _ = fmt.Fprintf(io.Writer, "ID:             %s\n", employee.ID)
	_, _ = fmt.Fprintf(io.Writer, "Name:           %s\n", employee.Name)
	_, _ = fmt.Fprintf(io.Writer, "Age:            %d\n", employee.Age)
	_, _ = fmt.Fprintf(io.Writer, "Still employee: %t\n", employee.StillEmployee)
	_, _ = fmt.Fprintf(io.Writer, "Email:          %s\n", employee.Email)
}

// outputCreateEmployeeJSON outputs the result in JSON format for machine consumption.
func outputCreateEmployeeJSON(employee *employeeDomain.Employee, io IOTuple) {
	result := map[string]interface{}{
		"id":             employee.ID.String(),
		"name":           employee.Name,
		"age":            employee.Age,
		"still_employee": employee.StillEmployee,
		"email":          employee.Email,
	}

	encoder := json.NewEncoder(io.Writer)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(result)
}
