// backend-go/cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andresuchdata/flowpilot/backend-go/internal/api"
	"github.com/andresuchdata/flowpilot/backend-go/internal/cache"
	"github.com/andresuchdata/flowpilot/backend-go/internal/config"
	"github.com/andresuchdata/flowpilot/backend-go/internal/inventory"
	"github.com/andresuchdata/flowpilot/backend-go/internal/repository"
	"github.com/andresuchdata/flowpilot/backend-go/internal/repository/postgres"
	"github.com/andresuchdata/flowpilot/backend-go/internal/service"
	"github.com/andresuchdata/flowpilot/backend-go/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.App.LogLevel)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Seed the inventory store
	items, err := inventory.LoadCatalog(cfg.App.CatalogFile)
	if err != nil {
		logger.Log.Fatal().Err(err).Str("file", cfg.App.CatalogFile).Msg("Failed to load catalog")
	}
	store, err := inventory.NewStore(items)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to build inventory store")
	}

	predictionCache, err := cache.NewPredictionCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Prediction cache unavailable, continuing without cache")
		predictionCache = cache.NewNoopPredictionCache()
	}
	defer predictionCache.Close()

	journal := openJournal(cfg)
	defer journal.Close()

	// Initialize services
	automationService := service.NewAutomationService(store, predictionCache, journal)

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{AutomationService: automationService}, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().
			Str("port", cfg.Server.Port).
			Int("skus", store.Len()).
			Bool("cache", cfg.Cache.Enabled).
			Bool("journal", cfg.Journal.Enabled).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

// openJournal connects the Postgres event journal when enabled. Connection
// failures degrade to the noop journal so the API keeps serving.
func openJournal(cfg *config.Config) repository.EventJournal {
	if !cfg.Journal.Enabled {
		return repository.NewNoopEventJournal()
	}

	db, err := postgres.NewDB(&cfg.Database, cfg.Journal.MaxConcurrency)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Event journal unavailable, continuing without journal")
		return repository.NewNoopEventJournal()
	}

	repo := postgres.NewEventJournalRepository(db)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Log.Warn().Err(err).Msg("Event journal schema setup failed, continuing without journal")
		_ = db.Close()
		return repository.NewNoopEventJournal()
	}

	return repo
}
