package routes

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/Alifouanne/job-forge/internal/api/handlers"
	"github.com/Alifouanne/job-forge/internal/api/middleware"
	"github.com/Alifouanne/job-forge/internal/cache"
	"github.com/Alifouanne/job-forge/internal/config"
	"github.com/Alifouanne/job-forge/internal/logging"
	"github.com/Alifouanne/job-forge/internal/payments"
	"github.com/Alifouanne/job-forge/internal/scheduler"
	"github.com/Alifouanne/job-forge/internal/store"
	"github.com/Alifouanne/job-forge/pkg/models"
	"github.com/Alifouanne/job-forge/pkg/utils"
)

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, st *store.Store, dc *cache.Cache, sched *scheduler.Scheduler, checkout *payments.Client) {
	e.HTTPErrorHandler = errorHandler

	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig(cfg.Server.AllowedOrigins))
	e.Use(middleware.RequestValidation())
	e.Use(middleware.TimeoutConfig(cfg.Server.ReadTimeout))
	e.Use(middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst).Middleware())

	requireAuth := middleware.RequireAuth(cfg.Auth.SessionSecret, cfg.Auth.LoginURL)
	optionalAuth := middleware.OptionalAuth(cfg.Auth.SessionSecret)

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(st, dc))
		health.GET("/live", handlers.LivenessHandler)
	}

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		// Public listing surface; the detail view resolves the caller's
		// saved state when a session is present.
		v1.GET("/jobs", handlers.ListJobsHandler(cfg, st))
		v1.GET("/jobs/:id", handlers.JobDetailHandler(st, dc), optionalAuth)

		// Employer-side job management
		v1.POST("/jobs", handlers.CreateJobHandler(cfg, st, checkout, sched), requireAuth)
		v1.PUT("/jobs/:id", handlers.UpdateJobHandler(st, dc), requireAuth)
		v1.DELETE("/jobs/:id", handlers.DeleteJobHandler(st, sched, dc), requireAuth)

		// Favorites
		v1.POST("/jobs/:id/save", handlers.SaveJobHandler(st, dc), requireAuth)
		v1.DELETE("/saved/:id", handlers.UnsaveJobHandler(st, dc), requireAuth)

		// Onboarding
		onboarding := v1.Group("/onboarding", requireAuth)
		{
			onboarding.POST("/company", handlers.CompanyOnboardingHandler(st))
			onboarding.POST("/jobseeker", handlers.JobSeekerOnboardingHandler(st))
		}
	}

	// Payment processor webhooks; authenticated by signature, not session.
	e.POST("/webhooks/payment", handlers.PaymentWebhookHandler(cfg.Payments.WebhookSecret, st))

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "Job Forge",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}

// errorHandler turns errors escaping a handler into the standard error
// response shape. CustomError carries its own status code; everything else
// degrades to echo's defaults.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	requestID, _ := c.Get("request_id").(string)

	var customErr *utils.CustomError
	if errors.As(err, &customErr) {
		_ = c.JSON(customErr.Code, models.ErrorResponse{
			Error:     "request_failed",
			Message:   customErr.Message,
			RequestID: requestID,
			Timestamp: time.Now(),
		})
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		_ = c.JSON(httpErr.Code, models.ErrorResponse{
			Error:     "request_failed",
			Message:   fmt.Sprintf("%v", httpErr.Message),
			RequestID: requestID,
			Timestamp: time.Now(),
		})
		return
	}

	logging.GetGlobalLogger().Error("Unhandled request error", map[string]interface{}{
		"request_id": requestID,
		"error":      err.Error(),
	})
	_ = c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:     "internal_error",
		Message:   "Internal server error",
		RequestID: requestID,
		Timestamp: time.Now(),
	})
}
