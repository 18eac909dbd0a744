package memory

import (
	"context"
	"sort"
	"time"

	"gridbill/internal/models"
	"gridbill/internal/repository"

	"github.com/google/uuid"
)

// ReadingRepository is the in-memory reading store.
type ReadingRepository struct {
	baseRepository
	store *Store
}

func (r *ReadingRepository) Insert(ctx context.Context, reading *models.Reading) error {
	_ = ctx
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[reading.CustomerID]; !ok {
		return repository.ErrCustomerNotFound
	}

	key := readingKey{customerID: reading.CustomerID, unixNano: reading.Timestamp.UnixNano()}
	if _, exists := s.activeReadings[key]; exists {
		return repository.ErrConflict
	}

	now := time.Now().UTC()
	if reading.ID == uuid.Nil {
		reading.ID = uuid.New()
	}
	reading.CreatedAt = now
	reading.UpdatedAt = now
	reading.DeletedAt = nil

	s.readings[reading.ID] = cloneReading(reading)
	s.activeReadings[key] = reading.ID
	return nil
}

func (r *ReadingRepository) GetByCustomerAndTimestamp(ctx context.Context, customerID uuid.UUID, ts time.Time) (*models.Reading, error) {
	_ = ctx
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.activeReadings[readingKey{customerID: customerID, unixNano: ts.UnixNano()}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneReading(s.readings[id]), nil
}

func (r *ReadingRepository) List(ctx context.Context, filter repository.ReadingFilter) ([]models.Reading, error) {
	_ = ctx
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var readings []models.Reading
	for _, reading := range s.readings {
		if reading.DeletedAt != nil {
			continue
		}
		if filter.CustomerID != nil && reading.CustomerID != *filter.CustomerID {
			continue
		}
		if !inRange(reading.Timestamp, filter.Start, filter.End) {
			continue
		}
		readings = append(readings, *cloneReading(reading))
	}

	sort.Slice(readings, func(i, j int) bool {
		if filter.OrderDesc {
			return readings[i].Timestamp.After(readings[j].Timestamp)
		}
		return readings[i].Timestamp.Before(readings[j].Timestamp)
	})

	if filter.Limit != nil && *filter.Limit < len(readings) {
		readings = readings[:*filter.Limit]
	}
	return readings, nil
}

func (r *ReadingRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int, error) {
	_ = ctx
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, reading := range s.readings {
		if reading.CustomerID == customerID {
			count++
		}
	}
	return count, nil
}

func (r *ReadingRepository) Truncate(ctx context.Context) error {
	_ = ctx
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.readings = make(map[uuid.UUID]*models.Reading)
	s.activeReadings = make(map[readingKey]uuid.UUID)
	return nil
}
