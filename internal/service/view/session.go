package view

import (
	"sync/atomic"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/view"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/sse"
	employeeservice "github.com/cmlabs-hris/hrms-lite/internal/service/employee"
)

// Publisher delivers render events to a session's subscribers
type Publisher interface {
	Publish(topic string, event sse.Event) int
}

// Session is the state of one client's console: its own directory cache and
// the three panels fed from it. Nothing is shared between sessions.
type Session struct {
	ID        string
	Directory employee.Directory
	Board     *AttendanceBoard
	Dashboard *DashboardPanel
	Employee  *EmployeePanel

	lastSeen atomic.Int64
}

func newSession(id string, repo employee.EmployeeRepository, fetch attendance.FetchFunc, publisher Publisher, opts Options) *Session {
	render := func(event string, data any) {
		publisher.Publish(id, sse.Event{Name: event, Data: data})
	}
	directory := employeeservice.NewDirectory(repo)

	s := &Session{
		ID:        id,
		Directory: directory,
		Board: &AttendanceBoard{
			directory:   directory,
			fetch:       fetch,
			now:         opts.Now,
			concurrency: opts.Concurrency,
			limit:       opts.DisplayLimit,
			render:      render,
			status:      view.StatusIdle,
		},
		Dashboard: &DashboardPanel{
			directory:   directory,
			fetch:       fetch,
			now:         opts.Now,
			concurrency: opts.Concurrency,
			render:      render,
			status:      view.StatusIdle,
		},
		Employee: &EmployeePanel{
			fetch:  fetch,
			render: render,
			status: view.StatusIdle,
		},
	}
	s.touch(opts.Now())
	return s
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// LastSeen is when the session was last looked up
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// Close cancels every in-flight load; late completions are discarded
func (s *Session) Close() {
	s.Board.Close()
	s.Dashboard.Close()
	s.Employee.Close()
}
