package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// maxDisplayLimit matches the largest limit GET /attendance accepts
const maxDisplayLimit = 100

type Config struct {
	App       AppConfig
	Upstream  UpstreamConfig
	View      ViewConfig
	Scheduler SchedulerConfig
	CORS      CORSConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// UpstreamConfig holds the HR API gateway settings
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
	// RPS of 0 disables client-side rate limiting
	RPS   float64
	Burst int
}

// ViewConfig holds aggregation and display settings
type ViewConfig struct {
	FetchConcurrency int
	DisplayLimit     int
	// SessionTTL of 0 keeps idle sessions forever
	SessionTTL time.Duration
}

type SchedulerConfig struct {
	DashboardRefreshInterval time.Duration
	SessionSweepInterval     time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	} else if err != nil {
		slog.Debug("No .env file found, using process environment")
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Upstream API configuration
	timeout, err := time.ParseDuration(getEnv("UPSTREAM_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid UPSTREAM_TIMEOUT: %w", err)
	}
	rps, err := strconv.ParseFloat(getEnv("UPSTREAM_RPS", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid UPSTREAM_RPS: %w", err)
	}
	burst, err := strconv.Atoi(getEnv("UPSTREAM_BURST", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid UPSTREAM_BURST: %w", err)
	}

	config.Upstream = UpstreamConfig{
		BaseURL: strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8000"), "/"),
		Timeout: timeout,
		RPS:     rps,
		Burst:   burst,
	}

	// View configuration
	concurrency, err := strconv.Atoi(getEnv("FETCH_CONCURRENCY", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_CONCURRENCY: %w", err)
	}
	displayLimit, err := strconv.Atoi(getEnv("DISPLAY_LIMIT", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_LIMIT: %w", err)
	}

	sessionTTL, err := time.ParseDuration(getEnv("VIEW_SESSION_TTL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid VIEW_SESSION_TTL: %w", err)
	}

	config.View = ViewConfig{
		FetchConcurrency: concurrency,
		DisplayLimit:     displayLimit,
		SessionTTL:       sessionTTL,
	}

	refreshInterval, err := time.ParseDuration(getEnv("DASHBOARD_REFRESH_INTERVAL", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DASHBOARD_REFRESH_INTERVAL: %w", err)
	}
	sweepInterval, err := time.ParseDuration(getEnv("SESSION_SWEEP_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_SWEEP_INTERVAL: %w", err)
	}
	config.Scheduler = SchedulerConfig{
		DashboardRefreshInterval: refreshInterval,
		SessionSweepInterval:     sweepInterval,
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("APP_PORT must be between 1 and 65535")
	}
	u, err := url.Parse(c.Upstream.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute URL")
	}
	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive")
	}
	if c.Upstream.RPS < 0 {
		return fmt.Errorf("UPSTREAM_RPS must not be negative")
	}
	if c.Upstream.RPS > 0 && c.Upstream.Burst < 1 {
		return fmt.Errorf("UPSTREAM_BURST must be at least 1 when UPSTREAM_RPS is set")
	}
	if c.View.FetchConcurrency < 1 {
		return fmt.Errorf("FETCH_CONCURRENCY must be at least 1")
	}
	if c.View.DisplayLimit < 1 || c.View.DisplayLimit > maxDisplayLimit {
		return fmt.Errorf("DISPLAY_LIMIT must be between 1 and %d", maxDisplayLimit)
	}
	if c.View.SessionTTL < 0 {
		return fmt.Errorf("VIEW_SESSION_TTL must not be negative")
	}
	if c.Scheduler.DashboardRefreshInterval < 0 {
		return fmt.Errorf("DASHBOARD_REFRESH_INTERVAL must not be negative")
	}
	if c.Scheduler.SessionSweepInterval < 0 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must not be negative")
	}
	return nil
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
