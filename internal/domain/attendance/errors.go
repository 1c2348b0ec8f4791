package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceUnavailable = errors.New("failed to load attendance")
	ErrEmployeeRequired      = errors.New("employee id is required")
)

// MsgMarkFailed is used when the upstream API rejects a mark without a detail
const MsgMarkFailed = "Failed to mark attendance"
