package view

import (
	"context"

	"github.com/cmlabs-hris/hrms-lite/internal/pkg/sse"
)

// ViewService owns the per-client view sessions and their panels
type ViewService interface {
	CreateSession() SessionResponse
	CloseSession(sessionID string) error
	SessionExists(sessionID string) bool

	// GetBoard returns the board, activating it on first use
	GetBoard(ctx context.Context, sessionID string) (BoardSnapshot, error)
	RefreshBoard(ctx context.Context, sessionID string) (BoardSnapshot, error)
	SetBoardRange(ctx context.Context, sessionID string, req SetRangeRequest) (BoardSnapshot, error)

	// GetDashboard returns the dashboard, computing it on first use
	GetDashboard(ctx context.Context, sessionID string) (DashboardSnapshot, error)
	RefreshDashboard(ctx context.Context, sessionID string) (DashboardSnapshot, error)

	GetEmployee(sessionID string) (EmployeeSnapshot, error)
	SelectEmployee(ctx context.Context, sessionID string, req SelectEmployeeRequest) (EmployeeSnapshot, error)

	// Subscribe streams the session's render events until cancel is called
	// or the session closes
	Subscribe(sessionID string) (<-chan sse.Event, func(), error)
}
