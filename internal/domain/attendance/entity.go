package attendance

import (
	"context"
	"time"
)

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

// Statuses lists the accepted values in form order
var Statuses = []string{string(StatusPresent), string(StatusAbsent)}

func (s Status) IsValid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// Attendance is one record per employee per calendar date. Date is always
// midnight UTC; uniqueness per date is the upstream API's business.
type Attendance struct {
	EmployeeID string
	Date       time.Time
	Status     Status
}

// AggregatedRecord is an attendance record joined with its owner's display
// name for combined views. Never persisted.
type AggregatedRecord struct {
	Attendance
	EmployeeName string
}

// AggregateResult is the joined record set plus the employees whose
// attendance could not be fetched and therefore contributed nothing.
type AggregateResult struct {
	Records []AggregatedRecord
	Omitted []string
}

// Summary is the per-employee attendance tally
type Summary struct {
	Present int
	Absent  int
	Total   int
	// Rate is the rounded percentage of present records, 0 without records
	Rate int
}

// FetchFunc fetches one employee's attendance history
type FetchFunc func(ctx context.Context, employeeID string) ([]Attendance, error)

// DefaultDisplayLimit caps filtered views
const DefaultDisplayLimit = 10

// MaxDisplayLimit is the largest page a caller may ask for
const MaxDisplayLimit = 100
