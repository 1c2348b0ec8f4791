package upstream

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/gateway"
)

type employeeRow struct {
	ID         int64  `json:"id,omitempty"`
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

func (r employeeRow) toEntity() employee.Employee {
	return employee.Employee{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		FullName:   r.FullName,
		Email:      r.Email,
		Department: r.Department,
	}
}

type createEmployeeBody struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

type employeeRepositoryImpl struct {
	client *gateway.Client
}

func NewEmployeeRepository(client *gateway.Client) employee.EmployeeRepository {
	return &employeeRepositoryImpl{client: client}
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	var rows []employeeRow
	if err := e.client.Get(ctx, "/employees", &rows); err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	employees := make([]employee.Employee, 0, len(rows))
	for _, row := range rows {
		employees = append(employees, row.toEntity())
	}
	return employees, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	body := createEmployeeBody{
		EmployeeID: newEmployee.EmployeeID,
		FullName:   newEmployee.FullName,
		Email:      newEmployee.Email,
		Department: newEmployee.Department,
	}

	var created employeeRow
	if err := e.client.Post(ctx, "/employees", body, &created); err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee %s: %w", newEmployee.EmployeeID, err)
	}
	if created.EmployeeID == "" {
		created.EmployeeID = newEmployee.EmployeeID
	}
	return created.toEntity(), nil
}

// Delete implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, employeeID string) error {
	if err := e.client.Delete(ctx, "/employees/"+url.PathEscape(employeeID)); err != nil {
		return fmt.Errorf("failed to delete employee %s: %w", employeeID, err)
	}
	return nil
}
