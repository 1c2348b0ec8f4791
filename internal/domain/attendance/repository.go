package attendance

import "context"

// AttendanceRepository defines access to the upstream attendance records
type AttendanceRepository interface {
	// ListByEmployee returns every record of one employee, in upstream order
	ListByEmployee(ctx context.Context, employeeID string) ([]Attendance, error)

	// Create marks attendance for one employee on one date
	Create(ctx context.Context, attendance Attendance) (Attendance, error)
}
