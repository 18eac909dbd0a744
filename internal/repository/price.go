package repository

import (
	"context"
	"gridbill/internal/models"
	"time"

	"github.com/google/uuid"
)

// PriceRepository defines the interface for price-related database operations
type PriceRepository interface {
	Repository
	// Insert stores a new price sample. A sample already present at the
	// same timestamp yields ErrConflict; duplicates are rejected on every
	// write path.
	Insert(ctx context.Context, price *models.PriceSample) error
	UpdatePrice(ctx context.Context, id uuid.UUID, priceEURKWh float64) (*models.PriceSample, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.PriceSample, error)
	GetLatest(ctx context.Context) (*models.PriceSample, error)
	// List returns samples with timestamps inside the inclusive range.
	List(ctx context.Context, filter PriceFilter) ([]models.PriceSample, error)
	Truncate(ctx context.Context) error
}

// PriceFilter defines the filter options for listing price samples
type PriceFilter struct {
	Start     *time.Time
	End       *time.Time
	OrderDesc bool
	Limit     *int
}
