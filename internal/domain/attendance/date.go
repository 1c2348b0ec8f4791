package attendance

import (
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/pkg/validator"
)

// DateOf truncates t to its calendar date, keeping t's own location for the
// year/month/day split and normalizing the result to midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FirstOfMonth returns the first calendar day of t's month
func FirstOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// ParseDate reads a YYYY-MM-DD calendar date as midnight UTC
func ParseDate(s string) (time.Time, error) {
	return time.Parse(validator.DateLayout, s)
}

// FormatDate renders t as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(validator.DateLayout)
}

// DateRange is an inclusive calendar-date window; a nil bound is open
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether d falls inside the range, both bounds inclusive
func (r DateRange) Contains(d time.Time) bool {
	day := DateOf(d)
	if r.From != nil && day.Before(DateOf(*r.From)) {
		return false
	}
	if r.To != nil && day.After(DateOf(*r.To)) {
		return false
	}
	return true
}

// ThisMonth seeds a view with first-of-month through today
func ThisMonth(now time.Time) DateRange {
	from := FirstOfMonth(now)
	to := DateOf(now)
	return DateRange{From: &from, To: &to}
}
