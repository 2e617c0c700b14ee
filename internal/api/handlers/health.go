package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Alifouanne/job-forge/internal/logging"
	"github.com/Alifouanne/job-forge/pkg/models"
)

var startTime = time.Now()

// Pinger verifies connectivity to an external dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   "1.0.0", // TODO: Get from build info
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api": "ok",
		},
	}

	return c.JSON(http.StatusOK, response)
}

// ReadinessHandler reports ready only when both backing stores answer.
func ReadinessHandler(db, cache Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := logging.GetGlobalLogger()

		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		status := "ready"
		code := http.StatusOK
		checks := map[string]string{"api": "ok", "database": "ok", "redis": "ok"}

		if err := db.Ping(ctx); err != nil {
			logger.Error("Readiness check: database unreachable", map[string]interface{}{"error": err.Error()})
			checks["database"] = "unreachable"
			status = "not_ready"
			code = http.StatusServiceUnavailable
		}
		if err := cache.Ping(ctx); err != nil {
			logger.Error("Readiness check: redis unreachable", map[string]interface{}{"error": err.Error()})
			checks["redis"] = "unreachable"
			status = "not_ready"
			code = http.StatusServiceUnavailable
		}

		return c.JSON(code, models.HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   "1.0.0",
			Uptime:    time.Since(startTime),
			Checks:    checks,
		})
	}
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	response := models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
	}

	return c.JSON(http.StatusOK, response)
}
