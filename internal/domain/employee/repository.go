package employee

import "context"

// EmployeeRepository is the upstream employee directory
type EmployeeRepository interface {
	List(ctx context.Context) ([]Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Delete(ctx context.Context, employeeID string) error
}
