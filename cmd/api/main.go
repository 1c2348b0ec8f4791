package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/config"
	appHTTP "github.com/cmlabs-hris/hrms-lite/internal/handler/http"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/cron"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/gateway"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/sse"
	"github.com/cmlabs-hris/hrms-lite/internal/repository/upstream"
	attendanceService "github.com/cmlabs-hris/hrms-lite/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/hrms-lite/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/hrms-lite/internal/service/employee"
	viewService "github.com/cmlabs-hris/hrms-lite/internal/service/view"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	client := gateway.NewClient(cfg.Upstream.BaseURL, gateway.Options{
		Timeout: cfg.Upstream.Timeout,
		RPS:     cfg.Upstream.RPS,
		Burst:   cfg.Upstream.Burst,
	})

	employeeRepo := upstream.NewEmployeeRepository(client)
	attendanceRepo := upstream.NewAttendanceRepository(client)

	hub := sse.NewHub(16)
	registry := viewService.NewRegistry(employeeRepo, attendanceRepo.ListByEmployee, hub, viewService.Options{
		Concurrency:  cfg.View.FetchConcurrency,
		DisplayLimit: cfg.View.DisplayLimit,
		SessionTTL:   cfg.View.SessionTTL,
	})

	employeeSvc := employeeService.NewEmployeeService(employeeRepo, registry)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, time.Now, cfg.View.FetchConcurrency)
	dashboardSvc := dashboardService.NewDashboardService(employeeRepo, attendanceRepo, time.Now, cfg.View.FetchConcurrency)
	viewSvc := viewService.NewViewService(registry, hub)

	scheduler := cron.NewScheduler()
	cron.NewViewJobs(registry, cfg.Scheduler.DashboardRefreshInterval, cfg.Scheduler.SessionSweepInterval).RegisterJobs(scheduler)
	scheduler.Start()
	slog.Info("Scheduled jobs", "jobs", scheduler.Jobs())
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg, appHTTP.Handlers{
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc, cfg.View.DisplayLimit),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
		View:       appHTTP.NewViewHandler(viewSvc, 30*time.Second),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server running", "addr", server.Addr, "upstream", cfg.Upstream.BaseURL, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// Open event streams only end when their sessions do
	server.RegisterOnShutdown(func() {
		slog.Info("Closing view sessions", "count", registry.Len())
		for _, id := range registry.IDs() {
			_ = registry.Remove(id)
		}
	})
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	slog.Info("Server stopped")
}
