package repository

import (
	"context"
	"gridbill/internal/models"
	"time"

	"github.com/google/uuid"
)

// ReadingRepository defines the interface for reading-related database operations
type ReadingRepository interface {
	Repository
	// Insert stores a new reading. It returns ErrConflict when an active
	// reading already exists for the same (customer, timestamp); the
	// uniqueness check is atomic with respect to concurrent inserts.
	// ErrCustomerNotFound is returned when the customer does not exist.
	Insert(ctx context.Context, reading *models.Reading) error
	GetByCustomerAndTimestamp(ctx context.Context, customerID uuid.UUID, ts time.Time) (*models.Reading, error)
	// List returns active readings only.
	List(ctx context.Context, filter ReadingFilter) ([]models.Reading, error)
	CountByCustomer(ctx context.Context, customerID uuid.UUID) (int, error)
	Truncate(ctx context.Context) error
}

// ReadingFilter defines the filter options for listing readings. Start and
// End bound the timestamp inclusively on both sides.
type ReadingFilter struct {
	CustomerID *uuid.UUID
	Start      *time.Time
	End        *time.Time
	OrderDesc  bool
	Limit      *int
}
