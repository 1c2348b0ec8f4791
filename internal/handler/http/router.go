package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hrms-lite/internal/config"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// Handlers groups everything the router mounts
type Handlers struct {
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Dashboard  DashboardHandler
	View       ViewHandler
}

func NewRouter(cfg *config.Config, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-lite"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.SlogLevel(),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.Employee.ListEmployees)
			r.Post("/", h.Employee.CreateEmployee)
			r.Delete("/{employeeID}", h.Employee.DeleteEmployee)
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", h.Attendance.ListAttendance)
			r.Post("/", h.Attendance.MarkAttendance)
			r.Get("/{employeeID}", h.Attendance.GetEmployeeAttendance)
		})

		r.Get("/dashboard", h.Dashboard.GetDashboard)

		r.Route("/views", func(r chi.Router) {
			r.Post("/", h.View.CreateSession)

			r.Route("/{sessionID}", func(r chi.Router) {
				r.Use(h.View.RequireSession)
				r.Delete("/", h.View.CloseSession)
				r.Get("/events", h.View.Events)

				r.Route("/board", func(r chi.Router) {
					r.Get("/", h.View.GetBoard)
					r.Post("/refresh", h.View.RefreshBoard)
					r.Put("/range", h.View.SetBoardRange)
				})

				r.Route("/dashboard", func(r chi.Router) {
					r.Get("/", h.View.GetDashboard)
					r.Post("/refresh", h.View.RefreshDashboard)
				})

				r.Get("/employee", h.View.GetEmployee)
				r.Put("/employee", h.View.SelectEmployee)
			})
		})
	})
	return r
}
