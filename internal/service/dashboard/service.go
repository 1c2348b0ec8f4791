package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/gather"
)

type DashboardServiceImpl struct {
	employee.EmployeeRepository
	attendance.AttendanceRepository
	now         func() time.Time
	concurrency int
}

func NewDashboardService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	now func() time.Time,
	concurrency int,
) dashboard.DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardServiceImpl{
		EmployeeRepository:   employeeRepo,
		AttendanceRepository: attendanceRepo,
		now:                  now,
		concurrency:          concurrency,
	}
}

// GetDashboard implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (*dashboard.DashboardResponse, error) {
	employees, err := s.EmployeeRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", employee.ErrDirectoryUnavailable, err)
	}

	stats, err := ComputeStats(ctx, employees, s.AttendanceRepository.ListByEmployee, attendance.DateOf(s.now()), s.concurrency)
	if err != nil {
		return nil, err
	}

	res := dashboard.NewDashboardResponse(stats)
	return &res, nil
}

// ComputeStats classifies every employee by the status of their record dated
// today. Employees without one, or whose fetch failed, count as neither
// present nor absent; failed ones are listed in Omitted.
func ComputeStats(ctx context.Context, employees []employee.Employee, fetch attendance.FetchFunc, today time.Time, concurrency int) (dashboard.Stats, error) {
	today = attendance.DateOf(today)

	res, err := gather.Collect(ctx, len(employees), concurrency, func(ctx context.Context, i int) (attendance.Status, error) {
		records, err := fetch(ctx, employees[i].EmployeeID)
		if err != nil {
			return "", err
		}
		for _, r := range records {
			if attendance.DateOf(r.Date).Equal(today) {
				return r.Status, nil
			}
		}
		return "", nil
	})
	if err != nil {
		return dashboard.Stats{}, err
	}

	stats := dashboard.Stats{
		Total:   len(employees),
		Omitted: []string{},
		Date:    today,
	}
	for i, status := range res.Values {
		if !res.OK[i] {
			stats.Omitted = append(stats.Omitted, employees[i].EmployeeID)
			continue
		}
		switch status {
		case attendance.StatusPresent:
			stats.Present++
		case attendance.StatusAbsent:
			stats.Absent++
		}
	}
	for _, f := range res.Failures {
		slog.Warn("Dashboard skipped employee", "employee_id", employees[f.Index].EmployeeID, "error", f.Err)
	}

	return stats, nil
}
