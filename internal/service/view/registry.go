package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/view"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/sse"
	"github.com/google/uuid"
)

type Options struct {
	Concurrency  int
	DisplayLimit int
	// SessionTTL is how long an unused session survives ExpireIdle, 0 keeps them forever
	SessionTTL time.Duration
	Now        func() time.Time
}

// Registry owns every live view session
type Registry struct {
	repo  employee.EmployeeRepository
	fetch attendance.FetchFunc
	hub   *sse.Hub
	opts  Options

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry(repo employee.EmployeeRepository, fetch attendance.FetchFunc, hub *sse.Hub, opts Options) *Registry {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DisplayLimit <= 0 {
		opts.DisplayLimit = attendance.DefaultDisplayLimit
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Registry{
		repo:     repo,
		fetch:    fetch,
		hub:      hub,
		opts:     opts,
		sessions: make(map[string]*Session),
	}
}

// Create opens a new session; its panels stay idle until first used
func (r *Registry) Create() *Session {
	id := uuid.NewString()
	s := newSession(id, r.repo, r.fetch, r.hub, r.opts)

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()

	slog.Debug("View session created", "session_id", id)
	return s
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, view.ErrSessionNotFound
	}
	s.touch(r.opts.Now())
	return s, nil
}

// Remove closes a session and ends its event streams
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return view.ErrSessionNotFound
	}

	s.Close()
	r.hub.CloseTopic(id)
	slog.Debug("View session removed", "session_id", id)
	return nil
}

// IDs lists the live session ids
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Len is the number of live sessions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) snapshot() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	return sessions
}

// EmployeesChanged implements employee.ChangeListener: every session drops
// its directory so the next load sees the write.
func (r *Registry) EmployeesChanged() {
	for _, s := range r.snapshot() {
		s.Directory.Invalidate()
	}
}

// RefreshDashboards recomputes the dashboard of every session that has one
// on screen. Failures are collected, not fatal.
func (r *Registry) RefreshDashboards(ctx context.Context) error {
	var errs []error
	for _, s := range r.snapshot() {
		if s.Dashboard.Status() == view.StatusIdle {
			continue
		}
		if _, err := s.Dashboard.Refresh(ctx); err != nil {
			errs = append(errs, fmt.Errorf("session %s: %w", s.ID, err))
		}
	}
	return errors.Join(errs...)
}

// ExpireIdle removes sessions unused for longer than the configured TTL
func (r *Registry) ExpireIdle(ctx context.Context) error {
	if r.opts.SessionTTL <= 0 {
		return nil
	}
	cutoff := r.opts.Now().Add(-r.opts.SessionTTL)
	for _, s := range r.snapshot() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if s.LastSeen().Before(cutoff) && r.hub.SubscriberCount(s.ID) == 0 {
			if err := r.Remove(s.ID); err == nil {
				slog.Info("View session expired", "session_id", s.ID)
			}
		}
	}
	return nil
}
