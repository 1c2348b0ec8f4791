package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard computes today's totals, re-deriving "today" on every call
	GetDashboard(ctx context.Context) (*DashboardResponse, error)
}
