package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"gridbill/internal/models"
	"gridbill/internal/repository"

	"github.com/google/uuid"
)

// CustomerRepository is the in-memory customer store.
type CustomerRepository struct {
	baseRepository
	store *Store
}

func (r *CustomerRepository) Upsert(ctx context.Context, customer *models.Customer) error {
	_ = ctx
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()

	if id, ok := s.customersByName[customer.Name]; ok {
		existing := s.customers[id]
		existing.IsConsumer = existing.IsConsumer || customer.IsConsumer
		existing.IsProducer = existing.IsProducer || customer.IsProducer
		existing.UpdatedAt = now
		*customer = *cloneCustomer(existing)
		return nil
	}

	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	customer.CreatedAt = now
	customer.UpdatedAt = now
	customer.DeletedAt = nil

	s.customers[customer.ID] = cloneCustomer(customer)
	s.customersByName[customer.Name] = customer.ID
	return nil
}

func (r *CustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	_ = ctx
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.customers[customer.ID]
	if !ok || existing.DeletedAt != nil {
		return repository.ErrNotFound
	}

	if id, taken := s.customersByName[customer.Name]; taken && id != customer.ID {
		return repository.ErrConflict
	}

	delete(s.customersByName, existing.Name)
	existing.Name = customer.Name
	existing.IsConsumer = customer.IsConsumer
	existing.IsProducer = customer.IsProducer
	existing.UpdatedAt = time.Now().UTC()
	s.customersByName[existing.Name] = existing.ID

	*customer = *cloneCustomer(existing)
	return nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	_ = ctx
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	customer, ok := s.customers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneCustomer(customer), nil
}

func (r *CustomerRepository) GetByName(ctx context.Context, name string) (*models.Customer, error) {
	_ = ctx
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.customersByName[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneCustomer(s.customers[id]), nil
}

func (r *CustomerRepository) List(ctx context.Context, filter repository.CustomerFilter) ([]models.Customer, error) {
	_ = ctx
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var customers []models.Customer
	for _, c := range s.customers {
		if !filter.IncludeDeleted && c.DeletedAt != nil {
			continue
		}
		if filter.Search != nil && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(*filter.Search)) {
			continue
		}
		customers = append(customers, *cloneCustomer(c))
	}

	sort.Slice(customers, func(i, j int) bool {
		if filter.OrderDesc {
			return customers[i].Name > customers[j].Name
		}
		return customers[i].Name < customers[j].Name
	})

	if filter.Offset != nil && *filter.Offset < len(customers) {
		customers = customers[*filter.Offset:]
	} else if filter.Offset != nil {
		customers = nil
	}
	if filter.Limit != nil && *filter.Limit < len(customers) {
		customers = customers[:*filter.Limit]
	}
	return customers, nil
}

func (r *CustomerRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	_ = ctx
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers[id]
	if !ok || customer.DeletedAt != nil {
		return repository.ErrNotFound
	}

	now := time.Now().UTC()
	customer.DeletedAt = &now
	customer.UpdatedAt = now

	// Cascade under the same lock: the customer marker and its readings
	// flip together or not at all.
	for _, reading := range s.readings {
		if reading.CustomerID == id && reading.DeletedAt == nil {
			ts := now
			reading.DeletedAt = &ts
			reading.UpdatedAt = now
			delete(s.activeReadings, readingKey{customerID: id, unixNano: reading.Timestamp.UnixNano()})
		}
	}
	return nil
}

func (r *CustomerRepository) Restore(ctx context.Context, id uuid.UUID) error {
	_ = ctx
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers[id]
	if !ok {
		return repository.ErrNotFound
	}
	if customer.DeletedAt == nil {
		return repository.ErrCustomerActive
	}

	customer.DeletedAt = nil
	customer.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *CustomerRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	_ = ctx
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers[id]
	if !ok {
		return repository.ErrNotFound
	}

	for _, reading := range s.readings {
		if reading.CustomerID == id {
			return repository.ErrHasAssociatedRecords
		}
	}

	delete(s.customersByName, customer.Name)
	delete(s.customers, id)
	return nil
}

func (r *CustomerRepository) Truncate(ctx context.Context) error {
	_ = ctx
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.customers = make(map[uuid.UUID]*models.Customer)
	s.customersByName = make(map[string]uuid.UUID)
	return nil
}
