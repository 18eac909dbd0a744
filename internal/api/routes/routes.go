// Package routes handles the setup and configuration of API routes
package routes

import (
	"database/sql"

	_ "gridbill/docs" // swagger docs
	"gridbill/internal/api/handlers"
	"gridbill/internal/api/middleware"
	"gridbill/internal/cache"
	"gridbill/internal/config"
	"gridbill/internal/ingest"
	"gridbill/internal/reconcile"
	"gridbill/internal/repository/postgres"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// SetupRoutes configures all API routes and their handlers
func SetupRoutes(cfg *config.Config, db *sql.DB, store cache.Cache, logger *zap.Logger) *gin.Engine {
	// Create router
	r := gin.Default()

	// Apply compression middleware globally
	r.Use(middleware.Compression(middleware.DefaultCompressionConfig()))

	// Routes without rate limiting
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Apply rate limiting to all other routes
	r.Use(middleware.NewRateLimiter(cfg).Middleware())

	// Initialize repositories
	customerRepo := postgres.NewCustomerRepository(db)
	readingRepo := postgres.NewReadingRepository(db)
	priceRepo := postgres.NewPriceRepository(db)

	// Initialize services
	reconcileService := reconcile.NewService(readingRepo, priceRepo, store, cfg.Cache.TTL, logger)
	pipeline := ingest.NewPipeline(customerRepo, readingRepo, priceRepo, logger, ingest.Options{})

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	customerHandler := handlers.NewCustomerHandler(customerRepo)
	readingHandler := handlers.NewReadingHandler(readingRepo, customerRepo, store, cfg.Cache.TTL)
	priceHandler := handlers.NewPriceHandler(priceRepo)
	reconcileHandler := handlers.NewReconcileHandler(reconcileService, customerRepo)
	ingestHandler := handlers.NewIngestHandler(pipeline)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthHandler.Health)

		// Customer routes
		customers := v1.Group("/customers")
		{
			customers.POST("", customerHandler.RegisterCustomer)
			customers.GET("", customerHandler.ListCustomers)
			customers.GET("/search", customerHandler.ListCustomers)
			customers.GET("/:id", customerHandler.GetCustomer)
			customers.PATCH("/:id", customerHandler.UpdateCustomer)
			customers.DELETE("/:id", customerHandler.SoftDeleteCustomer)
			customers.POST("/:id/restore", customerHandler.RestoreCustomer)
			customers.DELETE("/:id/purge", customerHandler.PurgeCustomer)
			customers.GET("/:id/readings", readingHandler.ListReadings)
			customers.GET("/:id/cost-revenue", reconcileHandler.CostRevenue)
		}

		// Reading routes
		readings := v1.Group("/readings")
		{
			readings.POST("", readingHandler.CreateReading)
		}

		// Price routes
		prices := v1.Group("/prices")
		{
			prices.POST("", priceHandler.CreatePrice)
			prices.GET("", priceHandler.ListPrices)
			prices.GET("/latest", priceHandler.GetLatestPrice)
			prices.PATCH("/:id", priceHandler.UpdatePrice)
		}

		// Batch ingest
		v1.POST("/ingest", ingestHandler.IngestBatch)
	}

	return r
}
