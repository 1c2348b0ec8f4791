package view

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/view"
	dashboardservice "github.com/cmlabs-hris/hrms-lite/internal/service/dashboard"
)

// DashboardPanel shows today's totals. Today is re-read from the clock on
// every refresh.
type DashboardPanel struct {
	directory   employee.Directory
	fetch       attendance.FetchFunc
	now         func() time.Time
	concurrency int
	render      renderFunc

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	status     view.Status
	stats      *dashboard.DashboardResponse
	errMsg     string
}

func (d *DashboardPanel) Refresh(ctx context.Context) (view.DashboardSnapshot, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	d.generation++
	generation := d.generation
	d.cancel = cancel
	d.status = view.StatusLoading
	d.errMsg = ""
	loading := d.snapshotLocked()
	d.mu.Unlock()
	d.render(view.EventDashboardUpdated, loading)

	stats, err := d.compute(ctx)

	d.mu.Lock()
	if generation != d.generation {
		snap := d.snapshotLocked()
		d.mu.Unlock()
		return snap, nil
	}
	d.cancel = nil
	if err != nil {
		d.status = view.StatusFailed
		d.errMsg = errorMessage(err)
		zero := dashboard.NewDashboardResponse(dashboard.Stats{Date: attendance.DateOf(d.now())})
		d.stats = &zero
	} else {
		d.status = view.StatusLoaded
		res := dashboard.NewDashboardResponse(stats)
		d.stats = &res
	}
	snap := d.snapshotLocked()
	d.mu.Unlock()

	d.render(view.EventDashboardUpdated, snap)
	return snap, err
}

func (d *DashboardPanel) compute(ctx context.Context) (dashboard.Stats, error) {
	employees, err := d.directory.Load(ctx)
	if err != nil {
		return dashboard.Stats{}, err
	}
	return dashboardservice.ComputeStats(ctx, employees, d.fetch, d.now(), d.concurrency)
}

func (d *DashboardPanel) Snapshot() view.DashboardSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

func (d *DashboardPanel) Status() view.Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

func (d *DashboardPanel) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.generation++
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

func (d *DashboardPanel) snapshotLocked() view.DashboardSnapshot {
	snap := view.DashboardSnapshot{
		Status: d.status,
		Error:  d.errMsg,
	}
	if d.stats != nil {
		stats := *d.stats
		stats.Omitted = append([]string{}, d.stats.Omitted...)
		snap.Stats = &stats
	}
	return snap
}
