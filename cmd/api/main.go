package main

// @title Station Locator API
// @version 1.0.0
// @description Поиск заправок рядом с точкой или адресом с актуальными ценами на топливо.

// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/station-locator/docs"
	"github.com/station-locator/internal/app"
	"github.com/station-locator/internal/config"
	httpDelivery "github.com/station-locator/internal/delivery/http"
	"github.com/station-locator/internal/delivery/http/handler"
	"github.com/station-locator/internal/pkg/logger"
	"github.com/station-locator/internal/repository/postgres"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Station Locator")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("cache_driver", cfg.Cache.Driver),
		zap.String("geocoder", cfg.Geocoder.Provider),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}

	// 4. Connect to cache
	geoCache, err := app.NewCache(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize cache", zap.Error(err))
	}

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := geoCache.Repo.Health(ctx); err != nil {
		log.Fatal("Cache health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize geocoder and use cases
	geocoder, err := app.NewGeocoder(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize geocoder", zap.Error(err))
	}

	geocodeUC := app.NewGeocodeUseCase(cfg, geocoder, geoCache.Repo, log)
	stationUC := app.NewStationUseCase(cfg, db, geocodeUC, log)

	log.Info("Use cases initialized")

	// 7. Initialize HTTP Handlers
	stationHandler := handler.NewStationHandler(stationUC, log)
	healthHandler := handler.NewHealthHandler(map[string]handler.HealthChecker{
		"database": db,
		"cache":    geoCache.Repo,
	}, log)

	// 8. Initialize HTTP Server
	server := httpDelivery.NewServer(cfg, log, stationHandler, healthHandler)

	// 9. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := db.Close(); err != nil {
		log.Error("Failed to close PostgreSQL", zap.Error(err))
	}

	if err := geoCache.Close(); err != nil {
		log.Error("Failed to close cache", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
