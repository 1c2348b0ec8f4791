package view

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/view"
	attendanceservice "github.com/cmlabs-hris/hrms-lite/internal/service/attendance"
)

type renderFunc func(event string, data any)

// AttendanceBoard is the combined attendance view. It retains the unfiltered
// aggregate so a range change only re-filters; loads go back to the directory.
type AttendanceBoard struct {
	directory   employee.Directory
	fetch       attendance.FetchFunc
	now         func() time.Time
	concurrency int
	limit       int
	render      renderFunc

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	status     view.Status
	rng        attendance.DateRange
	all        []attendance.AggregatedRecord
	displayed  []attendance.AggregatedRecord
	omitted    []string
	errMsg     string
}

// Activate resets the range to the current month and loads from a fresh directory
func (b *AttendanceBoard) Activate(ctx context.Context) (view.BoardSnapshot, error) {
	b.mu.Lock()
	b.rng = attendanceservice.DefaultRange(b.now())
	b.mu.Unlock()

	b.directory.Invalidate()
	return b.load(ctx)
}

// Refresh reloads everything but keeps the current range
func (b *AttendanceBoard) Refresh(ctx context.Context) (view.BoardSnapshot, error) {
	b.directory.Invalidate()
	return b.load(ctx)
}

// ApplyFilter re-filters the retained aggregate without fetching
func (b *AttendanceBoard) ApplyFilter(rng attendance.DateRange) view.BoardSnapshot {
	b.mu.Lock()
	b.rng = rng
	b.displayed = attendanceservice.FilterByRange(b.all, rng, b.limit)
	snap := b.snapshotLocked()
	b.mu.Unlock()

	b.render(view.EventBoardUpdated, snap)
	return snap
}

func (b *AttendanceBoard) Snapshot() view.BoardSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

func (b *AttendanceBoard) Status() view.Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

// Close cancels any in-flight load
func (b *AttendanceBoard) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.generation++
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
}

func (b *AttendanceBoard) load(ctx context.Context) (view.BoardSnapshot, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	b.mu.Lock()
	if b.cancel != nil {
		b.cancel()
	}
	b.generation++
	generation := b.generation
	b.cancel = cancel
	b.status = view.StatusLoading
	b.errMsg = ""
	loading := b.snapshotLocked()
	b.mu.Unlock()
	b.render(view.EventBoardUpdated, loading)

	employees, err := b.directory.Load(ctx)
	if err != nil {
		return b.fail(generation, err)
	}

	res, err := attendanceservice.Aggregate(ctx, employees, b.fetch, b.concurrency)
	if err != nil {
		return b.fail(generation, err)
	}

	b.mu.Lock()
	if generation != b.generation {
		snap := b.snapshotLocked()
		b.mu.Unlock()
		return snap, nil
	}
	b.cancel = nil
	b.status = view.StatusLoaded
	b.all = res.Records
	b.omitted = res.Omitted
	b.displayed = attendanceservice.FilterByRange(b.all, b.rng, b.limit)
	snap := b.snapshotLocked()
	b.mu.Unlock()

	b.render(view.EventBoardUpdated, snap)
	return snap, nil
}

// fail applies a failed load unless a newer one superseded it, in which case
// the current state is returned without error.
func (b *AttendanceBoard) fail(generation uint64, err error) (view.BoardSnapshot, error) {
	b.mu.Lock()
	if generation != b.generation {
		snap := b.snapshotLocked()
		b.mu.Unlock()
		return snap, nil
	}
	b.cancel = nil
	b.status = view.StatusFailed
	b.all = nil
	b.displayed = nil
	b.omitted = nil
	b.errMsg = errorMessage(err)
	snap := b.snapshotLocked()
	b.mu.Unlock()

	b.render(view.EventBoardUpdated, snap)
	return snap, err
}

func (b *AttendanceBoard) snapshotLocked() view.BoardSnapshot {
	from, to := attendance.FormatBounds(b.rng)
	omitted := []string{}
	if b.omitted != nil {
		omitted = slices.Clone(b.omitted)
	}
	return view.BoardSnapshot{
		Status:    b.status,
		From:      from,
		To:        to,
		Limit:     b.limit,
		Available: len(b.all),
		Records:   attendance.NewAggregatedResponses(b.displayed),
		Omitted:   omitted,
		Error:     b.errMsg,
	}
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, employee.ErrDirectoryUnavailable):
		return "Failed to load employees"
	case errors.Is(err, attendance.ErrAttendanceUnavailable):
		return "Failed to load attendance"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Request cancelled"
	default:
		return "Something went wrong"
	}
}
