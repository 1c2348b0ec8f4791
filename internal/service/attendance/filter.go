package attendance

import (
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
)

// FilterByRange keeps the records inside r and returns at most limit of them,
// in input order. A limit <= 0 means attendance.DefaultDisplayLimit. The
// input slice is left untouched.
func FilterByRange(records []attendance.AggregatedRecord, r attendance.DateRange, limit int) []attendance.AggregatedRecord {
	if limit <= 0 {
		limit = attendance.DefaultDisplayLimit
	}

	filtered := make([]attendance.AggregatedRecord, 0, min(limit, len(records)))
	for _, record := range records {
		if len(filtered) == limit {
			break
		}
		if r.Contains(record.Date) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

// DefaultRange is the range a freshly opened board starts with
func DefaultRange(now time.Time) attendance.DateRange {
	return attendance.ThisMonth(now)
}
