package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/view"
	"github.com/cmlabs-hris/hrms-lite/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// SessionRequired rejects requests whose {sessionID} is not a live view session
func SessionRequired(exists func(sessionID string) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := chi.URLParam(r, "sessionID")
			if sessionID == "" || !exists(sessionID) {
				response.HandleError(w, view.ErrSessionNotFound)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
