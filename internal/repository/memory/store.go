// Package memory provides in-memory implementations of the repository
// interfaces. They back unit tests and lightweight tooling; all mutation goes
// through a single mutex so the check-then-insert paths stay atomic.
package memory

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"gridbill/internal/models"

	"github.com/google/uuid"
)

// Store holds the shared state behind the three repositories. One lock
// serializes writers across customers, readings and prices so the soft-delete
// cascade behaves like the single postgres transaction it mirrors.
type Store struct {
	mu sync.RWMutex

	customers       map[uuid.UUID]*models.Customer
	customersByName map[string]uuid.UUID

	readings       map[uuid.UUID]*models.Reading
	activeReadings map[readingKey]uuid.UUID

	prices       map[uuid.UUID]*models.PriceSample
	pricesByTime map[int64]uuid.UUID
}

type readingKey struct {
	customerID uuid.UUID
	unixNano   int64
}

// NewStore constructs an empty store.
func NewStore() *Store {
	s := &Store{}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.customers = make(map[uuid.UUID]*models.Customer)
	s.customersByName = make(map[string]uuid.UUID)
	s.readings = make(map[uuid.UUID]*models.Reading)
	s.activeReadings = make(map[readingKey]uuid.UUID)
	s.prices = make(map[uuid.UUID]*models.PriceSample)
	s.pricesByTime = make(map[int64]uuid.UUID)
}

// Customers returns the customer repository view of the store.
func (s *Store) Customers() *CustomerRepository { return &CustomerRepository{store: s} }

// Readings returns the reading repository view of the store.
func (s *Store) Readings() *ReadingRepository { return &ReadingRepository{store: s} }

// Prices returns the price repository view of the store.
func (s *Store) Prices() *PriceRepository { return &PriceRepository{store: s} }

// baseRepository satisfies the Repository interface for in-memory
// implementations. There is no SQL handle and no transaction machinery; fn
// runs under the store lock held by the caller where atomicity matters.
type baseRepository struct{}

func (r *baseRepository) DB() *sql.DB { return nil }

func (r *baseRepository) Transaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	_ = ctx
	return fn(nil)
}

func cloneCustomer(c *models.Customer) *models.Customer {
	out := *c
	if c.DeletedAt != nil {
		t := *c.DeletedAt
		out.DeletedAt = &t
	}
	return &out
}

func cloneReading(r *models.Reading) *models.Reading {
	out := *r
	if r.ConsumptionKWh != nil {
		v := *r.ConsumptionKWh
		out.ConsumptionKWh = &v
	}
	if r.ProductionKWh != nil {
		v := *r.ProductionKWh
		out.ProductionKWh = &v
	}
	if r.DeletedAt != nil {
		t := *r.DeletedAt
		out.DeletedAt = &t
	}
	return &out
}

func clonePrice(p *models.PriceSample) *models.PriceSample {
	out := *p
	return &out
}

func inRange(ts time.Time, start, end *time.Time) bool {
	if start != nil && ts.Before(*start) {
		return false
	}
	if end != nil && ts.After(*end) {
		return false
	}
	return true
}
