package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// ListEmployees returns the whole directory
	ListEmployees(ctx context.Context) ([]EmployeeResponse, error)

	// CreateEmployee validates and registers a new employee
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee removes an employee by its user-assigned id
	DeleteEmployee(ctx context.Context, employeeID string) error
}

// Directory holds the employee list fetched once per view activation
type Directory interface {
	Load(ctx context.Context) ([]Employee, error)
	Invalidate()
}

// ChangeListener is told when the directory changed upstream
type ChangeListener interface {
	EmployeesChanged()
}
