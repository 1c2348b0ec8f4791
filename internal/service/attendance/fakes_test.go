package attendance

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
)

type fakeAttendanceRepo struct {
	ListByEmployeeFn func(ctx context.Context, employeeID string) ([]attendance.Attendance, error)
	CreateFn         func(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error)
}

func (f *fakeAttendanceRepo) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	return f.ListByEmployeeFn(ctx, employeeID)
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	return f.CreateFn(ctx, a)
}

type fakeEmployeeRepo struct {
	ListFn func(ctx context.Context) ([]employee.Employee, error)
}

func (f *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	return f.ListFn(ctx)
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, employeeID string) error {
	return nil
}

func day(s string) time.Time {
	d, err := attendance.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func rec(employeeID, date string, status attendance.Status) attendance.Attendance {
	return attendance.Attendance{EmployeeID: employeeID, Date: day(date), Status: status}
}

// fetchFrom serves attendance from a fixed map; ids mapped to an error fail
func fetchFrom(records map[string][]attendance.Attendance, failures map[string]error) attendance.FetchFunc {
	return func(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
		if err, ok := failures[employeeID]; ok {
			return nil, err
		}
		return records[employeeID], nil
	}
}
