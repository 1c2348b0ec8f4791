package attendance

import (
	"math"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
)

// Summarize counts present and absent days and the rounded attendance rate.
// An empty history has a rate of 0.
func Summarize(records []attendance.Attendance) attendance.Summary {
	var s attendance.Summary
	for _, r := range records {
		switch r.Status {
		case attendance.StatusPresent:
			s.Present++
		case attendance.StatusAbsent:
			s.Absent++
		}
	}
	s.Total = len(records)
	if s.Total > 0 {
		s.Rate = int(math.Round(float64(s.Present) / float64(s.Total) * 100))
	}
	return s
}
