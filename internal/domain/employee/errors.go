package employee

import "errors"

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrDirectoryUnavailable = errors.New("failed to load employees")
)

// Fallback messages used when the upstream API rejects a write without a detail
const (
	MsgCreateFailed = "Failed to add employee"
	MsgDeleteFailed = "Failed to delete employee"
)
