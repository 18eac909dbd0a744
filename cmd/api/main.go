// Package main provides the entry point for the GridBill API server
// @title GridBill API
// @version 1.0
// @description Energy meter readings, spot prices and cost/revenue reconciliation.
// @host localhost:8080
// @BasePath /api/v1
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"gridbill/internal/api/routes"
	"gridbill/internal/cache"
	"gridbill/internal/config"
	"gridbill/internal/database"
	"gridbill/internal/ingest"
	"gridbill/internal/logging"
	"gridbill/internal/repository/postgres"
	"gridbill/internal/validation"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Parse command line flags
	envFile := flag.String("env", ".env", "Path to env file")
	flag.Parse()

	// Load environment file
	if err := godotenv.Load(*envFile); err != nil && *envFile == ".env" {
		log.Printf("Warning: %v", err)
	}

	// Load configuration
	cfg := &config.Config{}
	if err := cfg.LoadFromEnv(); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.NewLogger("gridbill-api")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.Database); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Initialize validators
	validation.Initialize()

	// Select the cache backend. Cached entries are never invalidated by
	// writes; the TTL bounds staleness either way.
	var store cache.Cache
	if cfg.Cache.Enabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		store = redisCache
	} else {
		store = cache.NewMemoryCache()
	}

	// Start the scheduled feed if configured
	feedCtx, stopFeed := context.WithCancel(context.Background())
	defer stopFeed()
	if cfg.Ingest.Enabled {
		pipeline := ingest.NewPipeline(
			postgres.NewCustomerRepository(db),
			postgres.NewReadingRepository(db),
			postgres.NewPriceRepository(db),
			logger,
			ingest.Options{},
		)
		scheduler := ingest.NewScheduler(pipeline, ingest.FeedConfig{
			Enabled:  cfg.Ingest.Enabled,
			Schedule: cfg.Ingest.Schedule,
			File:     cfg.Ingest.File,
			Replace:  cfg.Ingest.Replace,
		}, logger)
		go func() {
			if err := scheduler.Start(feedCtx); err != nil {
				logger.Error("feed scheduler stopped", zap.Error(err))
			}
		}()
	}

	// Setup routes
	router := routes.SetupRoutes(cfg, db, store, logger)

	// Convert port string to int
	port, err := strconv.Atoi(cfg.API.Port)
	if err != nil {
		logger.Fatal("invalid port number", zap.Error(err))
	}

	// Create server with graceful shutdown
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")
	stopFeed()

	// Give outstanding requests 5 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}
