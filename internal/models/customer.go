package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer represents an energy customer in the system. A customer may
// consume, produce, or both; the two role flags are independent.
type Customer struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	Name       string     `json:"name" db:"name" binding:"required" example:"customer01"`
	IsConsumer bool       `json:"is_consumer" db:"is_consumer"`
	IsProducer bool       `json:"is_producer" db:"is_producer"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

// IsDeleted returns true if the customer has been soft deleted
func (c *Customer) IsDeleted() bool {
	return c.DeletedAt != nil
}

// RegisterCustomerRequest represents the request to register or update a customer.
// Registration is an upsert keyed on name: an existing customer's role flags are
// merged (OR) with the submitted ones.
type RegisterCustomerRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=100,nospaces" example:"customer01"`
	IsConsumer bool   `json:"is_consumer" example:"true"`
	IsProducer bool   `json:"is_producer" example:"false"`
}

// UpdateCustomerRequest represents the request to update a customer
type UpdateCustomerRequest struct {
	Name       *string `json:"name,omitempty" binding:"omitempty,min=1,max=100,nospaces"`
	IsConsumer *bool   `json:"is_consumer,omitempty"`
	IsProducer *bool   `json:"is_producer,omitempty"`
}
