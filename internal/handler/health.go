package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/happy/internal/middleware"
	"github.com/deppfellow/happy/internal/server"
	"github.com/labstack/echo/v4"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDegraded  = "degraded"
)

// dependencyCheck probes one dependency. required checks turn the whole
// service unhealthy when they fail; the others only degrade it.
type dependencyCheck struct {
	name     string
	required bool
	probe    func(ctx context.Context) error
}

type CheckResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]CheckResult `json:"checks"`
}

type HealthHandler struct {
	Handler
	checks []dependencyCheck
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
		checks:  configuredChecks(s),
	}
}

// configuredChecks returns the enabled probes. The database is required;
// Redis only backs the cache and the job queue.
func configuredChecks(s *server.Server) []dependencyCheck {
	var checks []dependencyCheck

	if s.Config.Observability.HasCheck("database") && s.DB != nil {
		checks = append(checks, dependencyCheck{
			name:     "database",
			required: true,
			probe:    func(ctx context.Context) error { return s.DB.Pool.Ping(ctx) },
		})
	}

	if s.Config.Observability.HasCheck("redis") && s.Redis != nil {
		checks = append(checks, dependencyCheck{
			name:  "redis",
			probe: func(ctx context.Context) error { return s.Redis.Ping(ctx).Err() },
		})
	}

	return checks
}

// CheckHealth answers GET /status: 200 while every required dependency
// answers, 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := HealthResponse{
		Status:      statusHealthy,
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]CheckResult, len(h.checks)),
	}

	timeout := h.server.Config.Observability.HealthChecks.Timeout
	for _, check := range h.checks {
		result := h.run(c.Request().Context(), check, timeout)
		response.Checks[check.name] = result

		if result.Status == statusHealthy {
			continue
		}

		logger.Error().
			Str("check", check.name).
			Str("error", result.Error).
			Str("response_time", result.ResponseTime).
			Msg("health check failed")

		if app := h.server.LoggerService.GetApplication(); app != nil {
			app.RecordCustomEvent("HealthCheckError", map[string]any{
				"check_type":    check.name,
				"error_message": result.Error,
			})
		}

		switch {
		case check.required:
			response.Status = statusUnhealthy
		case response.Status == statusHealthy:
			response.Status = statusDegraded
		}
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Str("status", response.Status).
		Msg("health check completed")

	if response.Status == statusUnhealthy {
		return c.JSON(http.StatusServiceUnavailable, response)
	}
	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) run(ctx context.Context, check dependencyCheck, timeout time.Duration) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := check.probe(ctx)
	result := CheckResult{
		Status:       statusHealthy,
		ResponseTime: time.Since(start).String(),
	}
	if err != nil {
		result.Status = statusUnhealthy
		result.Error = err.Error()
	}
	return result
}
