package repository

import (
	"context"
	"gridbill/internal/models"

	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer-related database operations
type CustomerRepository interface {
	Repository
	// Upsert inserts a customer or, when one with the same name exists,
	// merges the submitted role flags into it with OR. The passed customer
	// is updated with the stored state either way.
	Upsert(ctx context.Context, customer *models.Customer) error
	Update(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	GetByName(ctx context.Context, name string) (*models.Customer, error)
	List(ctx context.Context, filter CustomerFilter) ([]models.Customer, error)
	// SoftDelete marks the customer and all of its readings deleted in a
	// single atomic operation.
	SoftDelete(ctx context.Context, id uuid.UUID) error
	// Restore clears the customer's deletion marker. Reading markers are
	// left untouched.
	Restore(ctx context.Context, id uuid.UUID) error
	// HardDelete removes the customer row. It fails with
	// ErrHasAssociatedRecords when any reading references the customer,
	// soft-deleted ones included.
	HardDelete(ctx context.Context, id uuid.UUID) error
	Truncate(ctx context.Context) error
}

// CustomerFilter defines the filter options for listing customers
type CustomerFilter struct {
	Search         *string // Substring match on name
	IncludeDeleted bool
	OrderBy        string
	OrderDesc      bool
	Limit          *int
	Offset         *int
}
