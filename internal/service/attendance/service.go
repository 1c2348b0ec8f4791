package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/gateway"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	now         func() time.Time
	concurrency int
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	now func() time.Time,
	concurrency int,
) attendance.AttendanceService {
	if now == nil {
		now = time.Now
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		now:                  now,
		concurrency:          concurrency,
	}
}

// MarkAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	if strings.TrimSpace(req.Date) == "" {
		req.Date = attendance.FormatDate(attendance.DateOf(s.now()))
	}
	if strings.TrimSpace(req.Status) == "" {
		req.Status = string(attendance.StatusPresent)
	}
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, _ := attendance.ParseDate(req.Date)
	created, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Status:     attendance.Status(req.Status),
	})
	if err != nil {
		return attendance.AttendanceResponse{}, gateway.WithFallbackMessage(err, attendance.MsgMarkFailed)
	}

	slog.Info("Attendance marked", "employee_id", created.EmployeeID, "date", attendance.FormatDate(created.Date), "status", created.Status)
	return attendance.NewAttendanceResponse(created), nil
}

// GetEmployeeAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetEmployeeAttendance(ctx context.Context, employeeID string) (attendance.EmployeeAttendanceResponse, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return attendance.EmployeeAttendanceResponse{}, attendance.ErrEmployeeRequired
	}

	records, err := s.AttendanceRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		if ctx.Err() != nil {
			return attendance.EmployeeAttendanceResponse{}, ctx.Err()
		}
		slog.Warn("Failed to load employee attendance", "employee_id", employeeID, "error", err)
		return attendance.EmployeeAttendanceResponse{}, fmt.Errorf("%w: %w", attendance.ErrAttendanceUnavailable, err)
	}

	records = SortByDateDesc(records)
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.NewAttendanceResponse(r))
	}

	return attendance.EmployeeAttendanceResponse{
		EmployeeID: employeeID,
		Records:    responses,
		Summary:    attendance.NewSummaryResponse(Summarize(records)),
	}, nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, req attendance.ListAttendanceRequest) (attendance.ListAttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	employees, err := s.EmployeeRepository.List(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("%w: %w", employee.ErrDirectoryUnavailable, err)
	}

	aggregated, err := Aggregate(ctx, employees, s.AttendanceRepository.ListByEmployee, s.concurrency)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	filtered := FilterByRange(aggregated.Records, req.Range, req.Limit)
	from, to := attendance.FormatBounds(req.Range)
	return attendance.ListAttendanceResponse{
		From:      from,
		To:        to,
		Limit:     req.Limit,
		Available: len(aggregated.Records),
		Records:   attendance.NewAggregatedResponses(filtered),
		Omitted:   aggregated.Omitted,
	}, nil
}

// SortByDateDesc returns a copy of records, newest first
func SortByDateDesc(records []attendance.Attendance) []attendance.Attendance {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b attendance.Attendance) int {
		return b.Date.Compare(a.Date)
	})
	return sorted
}
