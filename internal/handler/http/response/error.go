package response

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/view"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/gateway"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/validator"
)

// StatusClientClosedRequest is the nginx convention for a caller that hung up
const StatusClientClosedRequest = 499

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.First(), validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, view.ErrSessionNotFound):
		NotFound(w, "View session not found")
		return

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
		return
	case errors.Is(err, employee.ErrDirectoryUnavailable):
		BadGateway(w, "Failed to load employees")
		return

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceUnavailable):
		BadGateway(w, "Failed to load attendance")
		return
	case errors.Is(err, attendance.ErrEmployeeRequired):
		BadRequest(w, "Employee ID is required", nil)
		return
	}

	// Upstream rejections of writes keep their status and message
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.StatusCode
		if status < http.StatusBadRequest || status > 599 {
			status = http.StatusBadGateway
		}
		message := apiErr.Message
		if message == "" {
			message = "HR service rejected the request"
		}
		Error(w, status, upstreamCode(status), message)
		return
	}

	switch {
	case errors.Is(err, gateway.ErrUnavailable):
		BadGateway(w, "HR service unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		GatewayTimeout(w, "HR service timed out")
	case errors.Is(err, context.Canceled):
		// client went away, nobody reads the body
		Error(w, StatusClientClosedRequest, "REQUEST_CANCELLED", "Request cancelled")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

func upstreamCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	}
	if text := http.StatusText(status); text != "" {
		return strings.ToUpper(strings.ReplaceAll(text, " ", "_"))
	}
	return "UPSTREAM_ERROR"
}
