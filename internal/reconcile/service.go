// Package reconcile computes cost and revenue for a customer by joining its
// readings to market prices on exact timestamp equality.
package reconcile

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gridbill/internal/cache"
	"gridbill/internal/models"
	"gridbill/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service reconciles readings against prices. Results for a (customer, range)
// pair are served read-through from the cache; write paths never invalidate
// it, so results may lag a write by up to one TTL.
type Service struct {
	readingRepo repository.ReadingRepository
	priceRepo   repository.PriceRepository
	cache       cache.Cache
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewService creates a reconciliation service.
func NewService(
	readingRepo repository.ReadingRepository,
	priceRepo repository.PriceRepository,
	c cache.Cache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		readingRepo: readingRepo,
		priceRepo:   priceRepo,
		cache:       c,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// CostRevenue sums consumption*price and production*price over the inclusive
// range [start, end]. A reading contributes only when a price sample exists
// at its exact timestamp; readings without a matching price are excluded from
// both totals. An empty range yields zero totals, not an error. Callers are
// expected to have resolved the customer beforehand.
func (s *Service) CostRevenue(ctx context.Context, customerID uuid.UUID, start, end time.Time) (models.CostRevenueSummary, error) {
	key := fmt.Sprintf("cost-revenue:%s:%d:%d", customerID, start.UnixNano(), end.UnixNano())

	if cached, err := s.cache.Get(ctx, key); err == nil {
		var summary models.CostRevenueSummary
		if err := json.Unmarshal(cached, &summary); err == nil {
			return summary, nil
		}
	}

	summary, err := s.compute(ctx, customerID, start, end)
	if err != nil {
		return models.CostRevenueSummary{}, err
	}

	if encoded, err := json.Marshal(summary); err == nil {
		if err := s.cache.Set(ctx, key, encoded, s.cacheTTL); err != nil {
			// Fire and forget; a cold cache only costs a recompute.
			s.logger.Warn("failed to cache cost-revenue result", zap.Error(err))
		}
	}
	return summary, nil
}

func (s *Service) compute(ctx context.Context, customerID uuid.UUID, start, end time.Time) (models.CostRevenueSummary, error) {
	readings, err := s.readingRepo.List(ctx, repository.ReadingFilter{
		CustomerID: &customerID,
		Start:      &start,
		End:        &end,
	})
	if err != nil {
		return models.CostRevenueSummary{}, fmt.Errorf("failed to fetch readings: %w", err)
	}

	prices, err := s.priceRepo.List(ctx, repository.PriceFilter{
		Start: &start,
		End:   &end,
	})
	if err != nil {
		return models.CostRevenueSummary{}, fmt.Errorf("failed to fetch prices: %w", err)
	}

	priceByTime := make(map[int64]float64, len(prices))
	for _, price := range prices {
		priceByTime[price.Timestamp.UnixNano()] = price.PriceEURKWh
	}

	summary := models.CostRevenueSummary{}
	for _, reading := range readings {
		price, ok := priceByTime[reading.Timestamp.UnixNano()]
		if !ok {
			// Strict equi-join: no price at that instant means the
			// reading is excluded from both sums.
			continue
		}
		if reading.ConsumptionKWh != nil {
			summary.TotalCost += *reading.ConsumptionKWh * price
		}
		if reading.ProductionKWh != nil {
			summary.TotalRevenue += *reading.ProductionKWh * price
		}
	}
	return summary, nil
}
