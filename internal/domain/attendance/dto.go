package attendance

import (
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hrms-lite/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type MarkAttendanceRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`   // YYYY-MM-DD
	Status     string `json:"status"` // Present, Absent
}

// Validate expects Date and Status defaults to be filled by the caller
func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "Employee is required")
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}

	if !validator.IsInSlice(r.Status, Statuses) {
		errs.Add("status", "status must be Present or Absent")
	}

	return errs.Err()
}

type ListAttendanceRequest struct {
	From  string `json:"from,omitempty"` // YYYY-MM-DD, open when empty
	To    string `json:"to,omitempty"`   // YYYY-MM-DD, open when empty
	Limit int    `json:"limit"`

	// Range is filled by Validate
	Range DateRange `json:"-"`
}

func (r *ListAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	rng, rangeErrs := ParseDateRange(r.From, r.To)
	errs = append(errs, rangeErrs...)

	if r.Limit < 0 {
		errs.Add("limit", "limit must be a positive number")
	}
	if r.Limit == 0 {
		r.Limit = DefaultDisplayLimit
	}
	if r.Limit > MaxDisplayLimit {
		errs.Add("limit", fmt.Sprintf("limit must not exceed %d", MaxDisplayLimit))
	}

	if len(errs) > 0 {
		return errs
	}
	r.Range = rng
	return nil
}

// ParseDateRange parses optional YYYY-MM-DD bounds and rejects an inverted range
func ParseDateRange(from, to string) (DateRange, validator.ValidationErrors) {
	var (
		rng  DateRange
		errs validator.ValidationErrors
	)

	if from = strings.TrimSpace(from); from != "" {
		if d, ok := validator.IsValidDate(from); ok {
			rng.From = &d
		} else {
			errs.Add("from", "from must be in YYYY-MM-DD format")
		}
	}
	if to = strings.TrimSpace(to); to != "" {
		if d, ok := validator.IsValidDate(to); ok {
			rng.To = &d
		} else {
			errs.Add("to", "to must be in YYYY-MM-DD format")
		}
	}
	if rng.From != nil && rng.To != nil && rng.From.After(*rng.To) {
		errs.Add("from", "from must not be after to")
	}

	return rng, errs
}

type AttendanceResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Date         string `json:"date"`
	Status       string `json:"status"`
}

type SummaryResponse struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Total   int `json:"total"`
	Rate    int `json:"rate"`
}

type EmployeeAttendanceResponse struct {
	EmployeeID string               `json:"employee_id"`
	Records    []AttendanceResponse `json:"records"`
	Summary    SummaryResponse      `json:"summary"`
}

type ListAttendanceResponse struct {
	From      *string              `json:"from,omitempty"`
	To        *string              `json:"to,omitempty"`
	Limit     int                  `json:"limit"`
	Available int                  `json:"available"` // size of the unfiltered aggregate
	Records   []AttendanceResponse `json:"records"`
	Omitted   []string             `json:"omitted"` // employees whose attendance failed to load
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		EmployeeID: a.EmployeeID,
		Date:       FormatDate(a.Date),
		Status:     string(a.Status),
	}
}

func NewAggregatedResponses(records []AggregatedRecord) []AttendanceResponse {
	res := make([]AttendanceResponse, 0, len(records))
	for _, r := range records {
		item := NewAttendanceResponse(r.Attendance)
		item.EmployeeName = r.EmployeeName
		res = append(res, item)
	}
	return res
}

func NewSummaryResponse(s Summary) SummaryResponse {
	return SummaryResponse{
		Present: s.Present,
		Absent:  s.Absent,
		Total:   s.Total,
		Rate:    s.Rate,
	}
}

// FormatBounds renders a range for responses, nil for open bounds
func FormatBounds(r DateRange) (from, to *string) {
	if r.From != nil {
		f := FormatDate(*r.From)
		from = &f
	}
	if r.To != nil {
		t := FormatDate(*r.To)
		to = &t
	}
	return from, to
}
