package view

// Status is the load state of one panel of a view session
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusFailed  Status = "failed"
)

// Render events published to a session's stream
const (
	EventConnected        = "connected"
	EventBoardUpdated     = "board.updated"
	EventDashboardUpdated = "dashboard.updated"
	EventEmployeeUpdated  = "employee.updated"
	EventPing             = "ping"
)
