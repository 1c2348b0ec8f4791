package dashboard

import (
	"math"
	"time"
)

// Stats is today's attendance picture over the whole directory. Present+Absent
// may be lower than Total: employees without a record today count in neither.
type Stats struct {
	Total   int
	Present int
	Absent  int
	// Omitted employees could not be fetched and count as unmarked
	Omitted []string
	Date    time.Time
}

// Unmarked is the number of employees with no status today
func (s Stats) Unmarked() int {
	return s.Total - s.Present - s.Absent
}

// AttendanceRate is the rounded percentage of employees present today
func (s Stats) AttendanceRate() int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Present) / float64(s.Total) * 100))
}

// DashboardResponse is the response for the dashboard endpoint
type DashboardResponse struct {
	TotalEmployees int      `json:"total_employees"`
	PresentToday   int      `json:"present_today"`
	AbsentToday    int      `json:"absent_today"`
	UnmarkedToday  int      `json:"unmarked_today"`
	AttendanceRate int      `json:"attendance_rate"`
	Omitted        []string `json:"omitted"`
	Date           string   `json:"date"` // Format: "YYYY-MM-DD"
}

func NewDashboardResponse(s Stats) DashboardResponse {
	omitted := s.Omitted
	if omitted == nil {
		omitted = []string{}
	}
	return DashboardResponse{
		TotalEmployees: s.Total,
		PresentToday:   s.Present,
		AbsentToday:    s.Absent,
		UnmarkedToday:  s.Unmarked(),
		AttendanceRate: s.AttendanceRate(),
		Omitted:        omitted,
		Date:           s.Date.Format("2006-01-02"),
	}
}
