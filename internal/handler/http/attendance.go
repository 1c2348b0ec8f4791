package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	MarkAttendance(w http.ResponseWriter, r *http.Request)
	GetEmployeeAttendance(w http.ResponseWriter, r *http.Request)
	ListAttendance(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	displayLimit      int
}

// NewAttendanceHandler creates the attendance handler; displayLimit is the
// cap used when a list request names none.
func NewAttendanceHandler(attendanceService attendance.AttendanceService, displayLimit int) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		displayLimit:      displayLimit,
	}
}

// MarkAttendance handles POST /attendance
func (h *attendanceHandlerImpl) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.MarkAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance marked successfully", result)
}

// GetEmployeeAttendance handles GET /attendance/{employeeID}
func (h *attendanceHandlerImpl) GetEmployeeAttendance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.attendanceService.GetEmployeeAttendance(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListAttendance handles GET /attendance?from=YYYY-MM-DD&to=YYYY-MM-DD&limit=N
func (h *attendanceHandlerImpl) ListAttendance(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := attendance.ListAttendanceRequest{
		From:  query.Get("from"),
		To:    query.Get("to"),
		Limit: h.displayLimit,
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			response.BadRequest(w, "limit must be a number", nil)
			return
		}
		// 0 keeps the configured default
		if limit != 0 {
			req.Limit = limit
		}
	}

	result, err := h.attendanceService.ListAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
