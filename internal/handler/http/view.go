package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/view"
	"github.com/cmlabs-hris/hrms-lite/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrms-lite/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/sse"
	"github.com/go-chi/chi/v5"
)

type ViewHandler interface {
	CreateSession(w http.ResponseWriter, r *http.Request)
	CloseSession(w http.ResponseWriter, r *http.Request)
	GetBoard(w http.ResponseWriter, r *http.Request)
	RefreshBoard(w http.ResponseWriter, r *http.Request)
	SetBoardRange(w http.ResponseWriter, r *http.Request)
	GetDashboard(w http.ResponseWriter, r *http.Request)
	RefreshDashboard(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	SelectEmployee(w http.ResponseWriter, r *http.Request)
	// Events streams render events over SSE
	Events(w http.ResponseWriter, r *http.Request)
	// RequireSession 404s requests for unknown sessions
	RequireSession(next http.Handler) http.Handler
}

type viewHandlerImpl struct {
	viewService view.ViewService
	keepalive   time.Duration
}

func NewViewHandler(viewService view.ViewService, keepalive time.Duration) ViewHandler {
	if keepalive <= 0 {
		keepalive = 30 * time.Second
	}
	return &viewHandlerImpl{
		viewService: viewService,
		keepalive:   keepalive,
	}
}

func (h *viewHandlerImpl) RequireSession(next http.Handler) http.Handler {
	return middleware.SessionRequired(h.viewService.SessionExists)(next)
}

// CreateSession handles POST /views
func (h *viewHandlerImpl) CreateSession(w http.ResponseWriter, r *http.Request) {
	response.Created(w, "View session created", h.viewService.CreateSession())
}

// CloseSession handles DELETE /views/{sessionID}
func (h *viewHandlerImpl) CloseSession(w http.ResponseWriter, r *http.Request) {
	if err := h.viewService.CloseSession(chi.URLParam(r, "sessionID")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "View session closed", nil)
}

// GetBoard handles GET /views/{sessionID}/board
func (h *viewHandlerImpl) GetBoard(w http.ResponseWriter, r *http.Request) {
	result, err := h.viewService.GetBoard(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// RefreshBoard handles POST /views/{sessionID}/board/refresh
func (h *viewHandlerImpl) RefreshBoard(w http.ResponseWriter, r *http.Request) {
	result, err := h.viewService.RefreshBoard(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SetBoardRange handles PUT /views/{sessionID}/board/range
func (h *viewHandlerImpl) SetBoardRange(w http.ResponseWriter, r *http.Request) {
	var req view.SetRangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.viewService.SetBoardRange(r.Context(), chi.URLParam(r, "sessionID"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetDashboard handles GET /views/{sessionID}/dashboard
func (h *viewHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.viewService.GetDashboard(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// RefreshDashboard handles POST /views/{sessionID}/dashboard/refresh
func (h *viewHandlerImpl) RefreshDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.viewService.RefreshDashboard(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetEmployee handles GET /views/{sessionID}/employee
func (h *viewHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	result, err := h.viewService.GetEmployee(chi.URLParam(r, "sessionID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SelectEmployee handles PUT /views/{sessionID}/employee
func (h *viewHandlerImpl) SelectEmployee(w http.ResponseWriter, r *http.Request) {
	var req view.SelectEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.viewService.SelectEmployee(r.Context(), chi.URLParam(r, "sessionID"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Events handles GET /views/{sessionID}/events
func (h *viewHandlerImpl) Events(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	events, cancel, err := h.viewService.Subscribe(sessionID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	connected := sse.Event{Name: view.EventConnected, Data: view.SessionResponse{SessionID: sessionID}}
	if err := sse.Write(w, connected); err != nil {
		return
	}
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := sse.Write(w, event); err != nil {
				slog.Debug("SSE write failed", "session_id", sessionID, "error", err)
				return
			}
			flusher.Flush()

		case <-keepalive.C:
			ping := sse.Event{Name: view.EventPing, Data: map[string]int64{"timestamp": time.Now().Unix()}}
			if err := sse.Write(w, ping); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
