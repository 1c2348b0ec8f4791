package employee

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/gateway"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	ListFn   func(ctx context.Context) ([]employee.Employee, error)
	CreateFn func(ctx context.Context, e employee.Employee) (employee.Employee, error)
	DeleteFn func(ctx context.Context, employeeID string) error
}

func (f *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	return f.ListFn(ctx)
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	return f.CreateFn(ctx, e)
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, employeeID string) error {
	return f.DeleteFn(ctx, employeeID)
}

type countingListener struct {
	calls atomic.Int32
}

func (l *countingListener) EmployeesChanged() {
	l.calls.Add(1)
}

func validRequest() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		EmployeeID: " E1 ",
		FullName:   "Ada Lovelace",
		Email:      "ada@example.com",
		Department: "Engineering",
	}
}

func TestEmployeeService_CreateEmployee_Success(t *testing.T) {
	var sent employee.Employee
	repo := &fakeEmployeeRepo{
		CreateFn: func(ctx context.Context, e employee.Employee) (employee.Employee, error) {
			sent = e
			e.ID = 7
			return e, nil
		},
	}
	listener := &countingListener{}
	svc := NewEmployeeService(repo, listener)

	res, err := svc.CreateEmployee(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "E1", sent.EmployeeID)
	assert.Equal(t, int64(7), res.ID)
	assert.Equal(t, "Ada Lovelace", res.FullName)
	assert.Equal(t, int32(1), listener.calls.Load())
}

func TestEmployeeService_CreateEmployee_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *employee.CreateEmployeeRequest)
		field   string
		message string
	}{
		{"missing id", func(r *employee.CreateEmployeeRequest) { r.EmployeeID = "  " }, "employee_id", "Employee ID is required"},
		{"missing name", func(r *employee.CreateEmployeeRequest) { r.FullName = "" }, "full_name", "Full name is required"},
		{"missing email", func(r *employee.CreateEmployeeRequest) { r.Email = "" }, "email", "Email is required"},
		{"missing department", func(r *employee.CreateEmployeeRequest) { r.Department = " " }, "department", "Department is required"},
		{"bad email", func(r *employee.CreateEmployeeRequest) { r.Email = "ada@" }, "email", "Please enter a valid email address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listener := &countingListener{}
			svc := NewEmployeeService(&fakeEmployeeRepo{}, listener)
			req := validRequest()
			tt.mutate(&req)

			_, err := svc.CreateEmployee(context.Background(), req)

			var vErrs validator.ValidationErrors
			require.ErrorAs(t, err, &vErrs)
			assert.Equal(t, tt.message, vErrs.ToMap()[tt.field])
			assert.Equal(t, int32(0), listener.calls.Load())
		})
	}
}

func TestEmployeeService_CreateEmployee_UpstreamRejects(t *testing.T) {
	tests := []struct {
		name    string
		apiErr  *gateway.APIError
		message string
	}{
		{"detail kept", &gateway.APIError{StatusCode: http.StatusConflict, Message: "Employee ID already exists"}, "Employee ID already exists"},
		{"no detail", &gateway.APIError{StatusCode: http.StatusBadGateway}, employee.MsgCreateFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeEmployeeRepo{
				CreateFn: func(ctx context.Context, e employee.Employee) (employee.Employee, error) {
					return employee.Employee{}, tt.apiErr
				},
			}
			listener := &countingListener{}
			svc := NewEmployeeService(repo, listener)

			_, err := svc.CreateEmployee(context.Background(), validRequest())

			var apiErr *gateway.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, int32(0), listener.calls.Load())
		})
	}
}

func TestEmployeeService_DeleteEmployee(t *testing.T) {
	var deleted string
	repo := &fakeEmployeeRepo{
		DeleteFn: func(ctx context.Context, employeeID string) error {
			deleted = employeeID
			return nil
		},
	}
	listener := &countingListener{}
	svc := NewEmployeeService(repo, listener)

	err := svc.DeleteEmployee(context.Background(), "E1")

	require.NoError(t, err)
	assert.Equal(t, "E1", deleted)
	assert.Equal(t, int32(1), listener.calls.Load())
}

func TestEmployeeService_DeleteEmployee_NotFound(t *testing.T) {
	repo := &fakeEmployeeRepo{
		DeleteFn: func(ctx context.Context, employeeID string) error {
			return &gateway.APIError{StatusCode: http.StatusNotFound, Message: "Employee not found"}
		},
	}
	svc := NewEmployeeService(repo, nil)

	err := svc.DeleteEmployee(context.Background(), "E404")

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Employee not found", apiErr.Message)
}

func TestEmployeeService_DeleteEmployee_Blank(t *testing.T) {
	svc := NewEmployeeService(&fakeEmployeeRepo{}, nil)

	err := svc.DeleteEmployee(context.Background(), " ")

	var vErrs validator.ValidationErrors
	assert.ErrorAs(t, err, &vErrs)
}

func TestEmployeeService_ListEmployees(t *testing.T) {
	repo := &fakeEmployeeRepo{
		ListFn: func(ctx context.Context) ([]employee.Employee, error) {
			return []employee.Employee{{EmployeeID: "E1", FullName: "Ada Lovelace"}}, nil
		},
	}
	svc := NewEmployeeService(repo, nil)

	res, err := svc.ListEmployees(context.Background())

	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "E1", res[0].EmployeeID)
}

func TestEmployeeService_ListEmployees_Failure(t *testing.T) {
	repo := &fakeEmployeeRepo{
		ListFn: func(ctx context.Context) ([]employee.Employee, error) {
			return nil, gateway.ErrUnavailable
		},
	}
	svc := NewEmployeeService(repo, nil)

	_, err := svc.ListEmployees(context.Background())

	assert.ErrorIs(t, err, employee.ErrDirectoryUnavailable)
	assert.ErrorIs(t, err, gateway.ErrUnavailable)
}
