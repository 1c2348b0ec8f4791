package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeViews struct {
	refreshed atomic.Int32
	expired   atomic.Int32
	err       error
}

func (f *fakeViews) RefreshDashboards(ctx context.Context) error {
	f.refreshed.Add(1)
	return f.err
}

func (f *fakeViews) ExpireIdle(ctx context.Context) error {
	f.expired.Add(1)
	return nil
}

func TestScheduler_DisabledJobIsSkipped(t *testing.T) {
	s := NewScheduler()
	views := &fakeViews{}

	NewViewJobs(views, 0, time.Minute).RegisterJobs(s)

	assert.Equal(t, []string{"expire_view_sessions"}, s.Jobs())
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler()
	views := &fakeViews{err: errors.New("upstream down")}
	NewViewJobs(views, time.Minute, time.Minute).RegisterJobs(s)

	err := s.RunOnce(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "refresh_dashboards")
	assert.Equal(t, int32(1), views.refreshed.Load())
	assert.Equal(t, int32(1), views.expired.Load())
}

func TestScheduler_RecoversPanic(t *testing.T) {
	s := NewScheduler()
	s.AddJob("explodes", time.Minute, func(ctx context.Context) error {
		panic("boom")
	})

	err := s.RunOnce(context.Background())

	assert.ErrorContains(t, err, "panic: boom")
}

func TestScheduler_StartRunsOnInterval(t *testing.T) {
	s := NewScheduler()
	var runs atomic.Int32
	s.AddJob("tick", 5*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start()
	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, 5*time.Millisecond)
	s.Stop()
	s.Stop()

	after := runs.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}
