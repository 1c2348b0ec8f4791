package view

import (
	"context"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/view"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/sse"
)

type ViewServiceImpl struct {
	registry *Registry
	hub      *sse.Hub
}

func NewViewService(registry *Registry, hub *sse.Hub) view.ViewService {
	return &ViewServiceImpl{
		registry: registry,
		hub:      hub,
	}
}

// CreateSession implements view.ViewService.
func (v *ViewServiceImpl) CreateSession() view.SessionResponse {
	s := v.registry.Create()
	return view.SessionResponse{SessionID: s.ID}
}

// CloseSession implements view.ViewService.
func (v *ViewServiceImpl) CloseSession(sessionID string) error {
	return v.registry.Remove(sessionID)
}

// SessionExists implements view.ViewService.
func (v *ViewServiceImpl) SessionExists(sessionID string) bool {
	_, err := v.registry.Get(sessionID)
	return err == nil
}

// GetBoard implements view.ViewService.
func (v *ViewServiceImpl) GetBoard(ctx context.Context, sessionID string) (view.BoardSnapshot, error) {
	s, err := v.registry.Get(sessionID)
	if err != nil {
		return view.BoardSnapshot{}, err
	}
	if s.Board.Status() == view.StatusIdle {
		return s.Board.Activate(ctx)
	}
	return s.Board.Snapshot(), nil
}

// RefreshBoard implements view.ViewService.
func (v *ViewServiceImpl) RefreshBoard(ctx context.Context, sessionID string) (view.BoardSnapshot, error) {
	s, err := v.registry.Get(sessionID)
	if err != nil {
		return view.BoardSnapshot{}, err
	}
	if s.Board.Status() == view.StatusIdle {
		return s.Board.Activate(ctx)
	}
	return s.Board.Refresh(ctx)
}

// SetBoardRange implements view.ViewService.
func (v *ViewServiceImpl) SetBoardRange(ctx context.Context, sessionID string, req view.SetRangeRequest) (view.BoardSnapshot, error) {
	if err := req.Validate(); err != nil {
		return view.BoardSnapshot{}, err
	}
	s, err := v.registry.Get(sessionID)
	if err != nil {
		return view.BoardSnapshot{}, err
	}
	if s.Board.Status() == view.StatusIdle {
		if _, err := s.Board.Activate(ctx); err != nil {
			return view.BoardSnapshot{}, err
		}
	}
	return s.Board.ApplyFilter(req.Range), nil
}

// GetDashboard implements view.ViewService.
func (v *ViewServiceImpl) GetDashboard(ctx context.Context, sessionID string) (view.DashboardSnapshot, error) {
	s, err := v.registry.Get(sessionID)
	if err != nil {
		return view.DashboardSnapshot{}, err
	}
	if s.Dashboard.Status() == view.StatusIdle {
		return s.Dashboard.Refresh(ctx)
	}
	return s.Dashboard.Snapshot(), nil
}

// RefreshDashboard implements view.ViewService.
func (v *ViewServiceImpl) RefreshDashboard(ctx context.Context, sessionID string) (view.DashboardSnapshot, error) {
	s, err := v.registry.Get(sessionID)
	if err != nil {
		return view.DashboardSnapshot{}, err
	}
	s.Directory.Invalidate()
	return s.Dashboard.Refresh(ctx)
}

// GetEmployee implements view.ViewService.
func (v *ViewServiceImpl) GetEmployee(sessionID string) (view.EmployeeSnapshot, error) {
	s, err := v.registry.Get(sessionID)
	if err != nil {
		return view.EmployeeSnapshot{}, err
	}
	return s.Employee.Snapshot(), nil
}

// SelectEmployee implements view.ViewService.
func (v *ViewServiceImpl) SelectEmployee(ctx context.Context, sessionID string, req view.SelectEmployeeRequest) (view.EmployeeSnapshot, error) {
	req.Normalize()
	s, err := v.registry.Get(sessionID)
	if err != nil {
		return view.EmployeeSnapshot{}, err
	}
	return s.Employee.Select(ctx, req.EmployeeID)
}

// Subscribe implements view.ViewService.
func (v *ViewServiceImpl) Subscribe(sessionID string) (<-chan sse.Event, func(), error) {
	if _, err := v.registry.Get(sessionID); err != nil {
		return nil, nil, err
	}
	events, cancel := v.hub.Subscribe(sessionID)
	return events, cancel, nil
}
