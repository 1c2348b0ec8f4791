package cron

import (
	"context"
	"time"
)

// ViewMaintainer is the part of the view registry the jobs drive
type ViewMaintainer interface {
	RefreshDashboards(ctx context.Context) error
	ExpireIdle(ctx context.Context) error
}

// ViewJobs keeps open console sessions current and drops abandoned ones
type ViewJobs struct {
	views           ViewMaintainer
	refreshInterval time.Duration
	expiryInterval  time.Duration
}

func NewViewJobs(views ViewMaintainer, refreshInterval, expiryInterval time.Duration) *ViewJobs {
	return &ViewJobs{
		views:           views,
		refreshInterval: refreshInterval,
		expiryInterval:  expiryInterval,
	}
}

func (j *ViewJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("refresh_dashboards", j.refreshInterval, j.views.RefreshDashboards)
	scheduler.AddJob("expire_view_sessions", j.expiryInterval, j.views.ExpireIdle)
}
