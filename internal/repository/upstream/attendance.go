package upstream

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/gateway"
)

// attendanceRow omits employee_id: upstream fills it with its surrogate key
type attendanceRow struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

type markAttendanceBody struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

type attendanceRepository struct {
	client *gateway.Client
}

func NewAttendanceRepository(client *gateway.Client) attendance.AttendanceRepository {
	return &attendanceRepository{client: client}
}

// ListByEmployee implements attendance.AttendanceRepository. The upstream rows
// do not carry the owner, so it is taken from the request.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	var rows []attendanceRow
	if err := a.client.Get(ctx, "/attendance/"+url.PathEscape(employeeID), &rows); err != nil {
		return nil, fmt.Errorf("failed to list attendance for %s: %w", employeeID, err)
	}

	records := make([]attendance.Attendance, 0, len(rows))
	for _, row := range rows {
		record, err := toAttendance(employeeID, row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	body := markAttendanceBody{
		EmployeeID: newAttendance.EmployeeID,
		Date:       attendance.FormatDate(newAttendance.Date),
		Status:     string(newAttendance.Status),
	}

	var created attendanceRow
	if err := a.client.Post(ctx, "/attendance", body, &created); err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to mark attendance for %s: %w", newAttendance.EmployeeID, err)
	}
	if created.Date == "" {
		return newAttendance, nil
	}
	return toAttendance(newAttendance.EmployeeID, created)
}

func toAttendance(employeeID string, row attendanceRow) (attendance.Attendance, error) {
	date, err := attendance.ParseDate(row.Date)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("%w: invalid attendance date %q for %s", gateway.ErrUnavailable, row.Date, employeeID)
	}
	status := attendance.Status(row.Status)
	if !status.IsValid() {
		return attendance.Attendance{}, fmt.Errorf("%w: invalid attendance status %q for %s", gateway.ErrUnavailable, row.Status, employeeID)
	}
	return attendance.Attendance{
		EmployeeID: employeeID,
		Date:       date,
		Status:     status,
	}, nil
}
