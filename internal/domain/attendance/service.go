package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// MarkAttendance records a status for one employee and date
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)

	// GetEmployeeAttendance returns one employee's history with its summary
	GetEmployeeAttendance(ctx context.Context, employeeID string) (EmployeeAttendanceResponse, error)

	// ListAttendance aggregates the whole directory and applies a range filter
	ListAttendance(ctx context.Context, req ListAttendanceRequest) (ListAttendanceResponse, error)
}
