package view

import (
	"context"
	"fmt"
	"sync"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/view"
	attendanceservice "github.com/cmlabs-hris/hrms-lite/internal/service/attendance"
)

// EmployeePanel shows one selected employee's history. Every selection takes a
// new generation and cancels the previous fetch; only a completion carrying
// the latest generation is applied.
type EmployeePanel struct {
	fetch  attendance.FetchFunc
	render renderFunc

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	status     view.Status
	employeeID string
	records    []attendance.Attendance
	summary    *attendance.Summary
	errMsg     string
}

// Select switches the panel to employeeID. The empty id clears the panel.
func (p *EmployeePanel) Select(ctx context.Context, employeeID string) (view.EmployeeSnapshot, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.generation++
	generation := p.generation
	p.employeeID = employeeID
	p.records = nil
	p.summary = nil
	p.errMsg = ""
	if employeeID == "" {
		p.status = view.StatusIdle
		snap := p.snapshotLocked()
		p.mu.Unlock()
		p.render(view.EventEmployeeUpdated, snap)
		return snap, nil
	}
	p.cancel = cancel
	p.status = view.StatusLoading
	loading := p.snapshotLocked()
	p.mu.Unlock()
	p.render(view.EventEmployeeUpdated, loading)

	records, err := p.fetch(ctx, employeeID)

	p.mu.Lock()
	if generation != p.generation {
		snap := p.snapshotLocked()
		p.mu.Unlock()
		return snap, nil
	}
	p.cancel = nil
	if err != nil {
		err = fmt.Errorf("%w: %w", attendance.ErrAttendanceUnavailable, err)
		p.status = view.StatusFailed
		p.errMsg = errorMessage(err)
	} else {
		sorted := attendanceservice.SortByDateDesc(records)
		summary := attendanceservice.Summarize(sorted)
		p.status = view.StatusLoaded
		p.records = sorted
		p.summary = &summary
	}
	snap := p.snapshotLocked()
	p.mu.Unlock()

	p.render(view.EventEmployeeUpdated, snap)
	return snap, err
}

func (p *EmployeePanel) Snapshot() view.EmployeeSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *EmployeePanel) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.generation++
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *EmployeePanel) snapshotLocked() view.EmployeeSnapshot {
	records := make([]attendance.AttendanceResponse, 0, len(p.records))
	for _, r := range p.records {
		records = append(records, attendance.NewAttendanceResponse(r))
	}
	snap := view.EmployeeSnapshot{
		Status:     p.status,
		EmployeeID: p.employeeID,
		Records:    records,
		Error:      p.errMsg,
	}
	if p.summary != nil {
		summary := attendance.NewSummaryResponse(*p.summary)
		snap.Summary = &summary
	}
	return snap
}
