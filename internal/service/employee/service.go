package employee

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/gateway"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
	listener employee.ChangeListener
}

// NewEmployeeService creates the employee service. listener may be nil.
func NewEmployeeService(repo employee.EmployeeRepository, listener employee.ChangeListener) employee.EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository: repo,
		listener:           listener,
	}
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.EmployeeRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", employee.ErrDirectoryUnavailable, err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.NewEmployeeResponse(e))
	}
	return responses, nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := s.EmployeeRepository.Create(ctx, req.ToEntity())
	if err != nil {
		return employee.EmployeeResponse{}, gateway.WithFallbackMessage(err, employee.MsgCreateFailed)
	}

	slog.Info("Employee created", "employee_id", created.EmployeeID)
	s.notify()
	return employee.NewEmployeeResponse(created), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, employeeID string) error {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		var errs validator.ValidationErrors
		errs.Add("employee_id", "Employee ID is required")
		return errs
	}

	if err := s.EmployeeRepository.Delete(ctx, employeeID); err != nil {
		err = gateway.WithFallbackMessage(err, employee.MsgDeleteFailed)
		if gateway.IsNotFound(err) {
			return fmt.Errorf("%w: %w", employee.ErrEmployeeNotFound, err)
		}
		return err
	}

	slog.Info("Employee deleted", "employee_id", employeeID)
	s.notify()
	return nil
}

func (s *EmployeeServiceImpl) notify() {
	if s.listener != nil {
		s.listener.EmployeesChanged()
	}
}
