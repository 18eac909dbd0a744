// Package testutil provides utilities for testing
package testutil

import (
	"context"
	"strings"
	"testing"
	"time"

	"gridbill/internal/cache"
	"gridbill/internal/config"
	"gridbill/internal/models"
	"gridbill/internal/repository"
	"gridbill/internal/repository/memory"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestContext holds common test dependencies. Repositories are backed by the
// in-memory store so handler and service tests run without a database.
type TestContext struct {
	T            *testing.T
	Config       *config.Config
	Store        *memory.Store
	CustomerRepo repository.CustomerRepository
	ReadingRepo  repository.ReadingRepository
	PriceRepo    repository.PriceRepository
	Cache        cache.Cache
	Logger       *zap.Logger
}

// NewTestContext creates a new test context with all dependencies
func NewTestContext(t *testing.T) *TestContext {
	t.Helper()

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)

	// Initialize validators
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("nospaces", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			return strings.TrimSpace(value) != ""
		})
		if err != nil {
			t.Fatal("Failed to register validator:", err)
		}
	}

	cfg := &config.Config{}
	cfg.API.Port = "8080"
	cfg.Cache.TTL = 5 * time.Minute
	cfg.RateLimit = config.RateLimitConfig{Requests: 1000, Window: 1, Burst: 1000}

	store := memory.NewStore()

	return &TestContext{
		T:            t,
		Config:       cfg,
		Store:        store,
		CustomerRepo: store.Customers(),
		ReadingRepo:  store.Readings(),
		PriceRepo:    store.Prices(),
		Cache:        cache.NewMemoryCache(),
		Logger:       zap.NewNop(),
	}
}

// CreateTestCustomer registers a customer and returns it
func (tc *TestContext) CreateTestCustomer(name string, isConsumer, isProducer bool) *models.Customer {
	tc.T.Helper()

	customer := &models.Customer{
		Name:       name,
		IsConsumer: isConsumer,
		IsProducer: isProducer,
	}
	err := tc.CustomerRepo.Upsert(context.Background(), customer)
	require.NoError(tc.T, err, "Failed to create test customer")
	return customer
}

// CreateTestReading stores a reading for the given customer and returns it
func (tc *TestContext) CreateTestReading(customerID uuid.UUID, ts time.Time, consumption, production *float64) *models.Reading {
	tc.T.Helper()

	reading := &models.Reading{
		CustomerID:     customerID,
		Timestamp:      ts,
		ConsumptionKWh: consumption,
		ProductionKWh:  production,
	}
	err := tc.ReadingRepo.Insert(context.Background(), reading)
	require.NoError(tc.T, err, "Failed to create test reading")
	return reading
}

// CreateTestPrice stores a price sample and returns it
func (tc *TestContext) CreateTestPrice(ts time.Time, priceEURKWh float64) *models.PriceSample {
	tc.T.Helper()

	price := &models.PriceSample{
		Timestamp:   ts,
		PriceEURKWh: priceEURKWh,
	}
	err := tc.PriceRepo.Insert(context.Background(), price)
	require.NoError(tc.T, err, "Failed to create test price")
	return price
}
