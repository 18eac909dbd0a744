package memory

import (
	"context"
	"sort"
	"time"

	"gridbill/internal/models"
	"gridbill/internal/repository"

	"github.com/google/uuid"
)

// PriceRepository is the in-memory price store.
type PriceRepository struct {
	baseRepository
	store *Store
}

func (r *PriceRepository) Insert(ctx context.Context, price *models.PriceSample) error {
	_ = ctx
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := price.Timestamp.UnixNano()
	if _, exists := s.pricesByTime[key]; exists {
		return repository.ErrConflict
	}

	now := time.Now().UTC()
	if price.ID == uuid.Nil {
		price.ID = uuid.New()
	}
	price.CreatedAt = now
	price.UpdatedAt = now

	s.prices[price.ID] = clonePrice(price)
	s.pricesByTime[key] = price.ID
	return nil
}

func (r *PriceRepository) UpdatePrice(ctx context.Context, id uuid.UUID, priceEURKWh float64) (*models.PriceSample, error) {
	_ = ctx
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	price, ok := s.prices[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	price.PriceEURKWh = priceEURKWh
	price.UpdatedAt = time.Now().UTC()
	return clonePrice(price), nil
}

func (r *PriceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PriceSample, error) {
	_ = ctx
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	price, ok := s.prices[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clonePrice(price), nil
}

func (r *PriceRepository) GetLatest(ctx context.Context) (*models.PriceSample, error) {
	_ = ctx
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *models.PriceSample
	for _, price := range s.prices {
		if latest == nil || price.Timestamp.After(latest.Timestamp) {
			latest = price
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	return clonePrice(latest), nil
}

func (r *PriceRepository) List(ctx context.Context, filter repository.PriceFilter) ([]models.PriceSample, error) {
	_ = ctx
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var prices []models.PriceSample
	for _, price := range s.prices {
		if !inRange(price.Timestamp, filter.Start, filter.End) {
			continue
		}
		prices = append(prices, *clonePrice(price))
	}

	sort.Slice(prices, func(i, j int) bool {
		if filter.OrderDesc {
			return prices[i].Timestamp.After(prices[j].Timestamp)
		}
		return prices[i].Timestamp.Before(prices[j].Timestamp)
	})

	if filter.Limit != nil && *filter.Limit < len(prices) {
		prices = prices[:*filter.Limit]
	}
	return prices, nil
}

func (r *PriceRepository) Truncate(ctx context.Context) error {
	_ = ctx
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prices = make(map[uuid.UUID]*models.PriceSample)
	s.pricesByTime = make(map[int64]uuid.UUID)
	return nil
}
