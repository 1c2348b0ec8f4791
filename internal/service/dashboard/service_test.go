package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

type fakeAttendanceRepo struct {
	ListByEmployeeFn func(ctx context.Context, employeeID string) ([]attendance.Attendance, error)
}

func (f *fakeAttendanceRepo) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	return f.ListByEmployeeFn(ctx, employeeID)
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	return a, nil
}

var (
	today     = time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC)
	yesterday = today.AddDate(0, 0, -1)
)

func employees(ids ...string) []employee.Employee {
	out := make([]employee.Employee, 0, len(ids))
	for _, id := range ids {
		out = append(out, employee.Employee{EmployeeID: id, FullName: "Employee " + id})
	}
	return out
}

func todayFetch(records map[string][]attendance.Attendance, failing ...string) attendance.FetchFunc {
	return func(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
		for _, id := range failing {
			if id == employeeID {
				return nil, errors.New("upstream down")
			}
		}
		return records[employeeID], nil
	}
}

func TestComputeStats_PresentAbsentNone(t *testing.T) {
	records := map[string][]attendance.Attendance{
		"E1": {{EmployeeID: "E1", Date: today, Status: attendance.StatusPresent}},
		"E2": {{EmployeeID: "E2", Date: today, Status: attendance.StatusAbsent}},
		"E3": {{EmployeeID: "E3", Date: yesterday, Status: attendance.StatusPresent}},
	}

	stats, err := ComputeStats(context.Background(), employees("E1", "E2", "E3"), todayFetch(records), today, 2)

	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Present)
	assert.Equal(t, 1, stats.Absent)
	assert.Equal(t, 1, stats.Unmarked())
	assert.Equal(t, 33, stats.AttendanceRate())
	assert.Empty(t, stats.Omitted)
	assert.Equal(t, today, stats.Date)
}

func TestComputeStats_FailedFetchCountsAsUnmarked(t *testing.T) {
	records := map[string][]attendance.Attendance{
		"E1": {{EmployeeID: "E1", Date: today, Status: attendance.StatusPresent}},
	}

	stats, err := ComputeStats(context.Background(), employees("E1", "E2"), todayFetch(records, "E2"), today, 1)

	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Present)
	assert.Equal(t, 0, stats.Absent)
	assert.Equal(t, []string{"E2"}, stats.Omitted)
	assert.Equal(t, 50, stats.AttendanceRate())
}

func TestComputeStats_TodayIgnoresTimeOfDay(t *testing.T) {
	records := map[string][]attendance.Attendance{
		"E1": {{EmployeeID: "E1", Date: today, Status: attendance.StatusPresent}},
	}
	afternoon := today.Add(15 * time.Hour)

	stats, err := ComputeStats(context.Background(), employees("E1"), todayFetch(records), afternoon, 1)

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Present)
}

func TestComputeStats_NoEmployees(t *testing.T) {
	stats, err := ComputeStats(context.Background(), nil, todayFetch(nil), today, 1)

	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.AttendanceRate())
}

func TestDashboardService_GetDashboard(t *testing.T) {
	employeeRepo := &fakeEmployeeRepo{
		ListFn: func(ctx context.Context) ([]employee.Employee, error) {
			return employees("E1", "E2"), nil
		},
	}
	attendanceRepo := &fakeAttendanceRepo{
		ListByEmployeeFn: todayFetch(map[string][]attendance.Attendance{
			"E1": {{EmployeeID: "E1", Date: today, Status: attendance.StatusPresent}},
			"E2": {{EmployeeID: "E2", Date: today, Status: attendance.StatusPresent}},
		}),
	}
	clock := func() time.Time { return today.Add(9 * time.Hour) }
	svc := NewDashboardService(employeeRepo, attendanceRepo, clock, 2)

	res, err := svc.GetDashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalEmployees)
	assert.Equal(t, 2, res.PresentToday)
	assert.Equal(t, 0, res.UnmarkedToday)
	assert.Equal(t, 100, res.AttendanceRate)
	assert.Equal(t, "2024-06-17", res.Date)
	assert.Equal(t, []string{}, res.Omitted)
}

func TestDashboardService_GetDashboard_RederivesToday(t *testing.T) {
	employeeRepo := &fakeEmployeeRepo{
		ListFn: func(ctx context.Context) ([]employee.Employee, error) {
			return employees("E1"), nil
		},
	}
	attendanceRepo := &fakeAttendanceRepo{
		ListByEmployeeFn: todayFetch(map[string][]attendance.Attendance{
			"E1": {{EmployeeID: "E1", Date: today, Status: attendance.StatusPresent}},
		}),
	}
	now := today
	svc := NewDashboardService(employeeRepo, attendanceRepo, func() time.Time { return now }, 1)

	res, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.PresentToday)

	now = today.AddDate(0, 0, 1)
	res, err = svc.GetDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.PresentToday)
	assert.Equal(t, "2024-06-18", res.Date)
}

func TestDashboardService_GetDashboard_DirectoryFailure(t *testing.T) {
	employeeRepo := &fakeEmployeeRepo{
		ListFn: func(ctx context.Context) ([]employee.Employee, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewDashboardService(employeeRepo, &fakeAttendanceRepo{}, nil, 1)

	res, err := svc.GetDashboard(context.Background())

	assert.Nil(t, res)
	assert.ErrorIs(t, err, employee.ErrDirectoryUnavailable)
}
