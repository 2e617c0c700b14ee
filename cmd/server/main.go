package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Alifouanne/job-forge/internal/api/routes"
	"github.com/Alifouanne/job-forge/internal/cache"
	"github.com/Alifouanne/job-forge/internal/config"
	"github.com/Alifouanne/job-forge/internal/logging"
	"github.com/Alifouanne/job-forge/internal/payments"
	"github.com/Alifouanne/job-forge/internal/scheduler"
	"github.com/Alifouanne/job-forge/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	logger := logging.GetGlobalLogger()
	logger.Info("Starting Job Forge API")

	ctx := context.Background()

	// Connect PostgreSQL
	st, err := store.New(ctx, cfg.Database.URL)
	if err != nil {
		logger.Fatal("Failed to connect to database", map[string]interface{}{"error": err.Error()})
	}
	defer st.Close()

	// Connect Redis
	dc, err := cache.NewRedis(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to redis", map[string]interface{}{"error": err.Error()})
	}
	defer dc.Close()

	// Start the expiration scheduler
	sched := scheduler.New(dc.Client(), st, cfg, logger)
	if err := sched.Start(); err != nil {
		logger.Fatal("Failed to start scheduler", map[string]interface{}{"error": err.Error()})
	}

	// Payment processor client
	checkout := payments.NewClient(cfg)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Setup routes
	routes.SetupRoutes(e, cfg, st, dc, sched, checkout)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Stop the scheduler first so no sweep runs against closing pools
		logger.Info("Stopping expiration scheduler...")
		sched.Stop()

		// Shutdown Echo server
		logger.Info("Stopping HTTP server...")
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Server shutdown complete")
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{"address": address})

	if err := e.Start(address); err != nil {
		logger.Fatal("Server failed to start", map[string]interface{}{"error": err.Error()})
	}
}
