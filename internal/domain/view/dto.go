package view

import (
	"strings"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/dashboard"
)

type SessionResponse struct {
	SessionID string `json:"session_id"`
}

type SetRangeRequest struct {
	From string `json:"from"` // YYYY-MM-DD, open when empty
	To   string `json:"to"`   // YYYY-MM-DD, open when empty

	Range attendance.DateRange `json:"-"`
}

func (r *SetRangeRequest) Validate() error {
	rng, errs := attendance.ParseDateRange(r.From, r.To)
	if len(errs) > 0 {
		return errs
	}
	r.Range = rng
	return nil
}

type SelectEmployeeRequest struct {
	// EmployeeID may be empty to clear the selection
	EmployeeID string `json:"employee_id"`
}

func (r *SelectEmployeeRequest) Normalize() {
	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
}

// BoardSnapshot is what the combined attendance board currently shows
type BoardSnapshot struct {
	Status    Status                          `json:"status"`
	From      *string                         `json:"from,omitempty"`
	To        *string                         `json:"to,omitempty"`
	Limit     int                             `json:"limit"`
	Available int                             `json:"available"`
	Records   []attendance.AttendanceResponse `json:"records"`
	Omitted   []string                        `json:"omitted"`
	Error     string                          `json:"error,omitempty"`
}

type DashboardSnapshot struct {
	Status Status                       `json:"status"`
	Stats  *dashboard.DashboardResponse `json:"stats,omitempty"`
	Error  string                       `json:"error,omitempty"`
}

// EmployeeSnapshot is the single-employee panel: the selection plus its history
type EmployeeSnapshot struct {
	Status     Status                          `json:"status"`
	EmployeeID string                          `json:"employee_id,omitempty"`
	Records    []attendance.AttendanceResponse `json:"records"`
	Summary    *attendance.SummaryResponse     `json:"summary,omitempty"`
	Error      string                          `json:"error,omitempty"`
}
