package models

import (
	"time"

	"github.com/google/uuid"
)

// Reading represents one timestamped consumption and/or production sample for
// a customer. Either quantity may be absent; a zero value is a present value.
// At most one active reading exists per (customer, timestamp).
type Reading struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	CustomerID     uuid.UUID  `json:"customer_id" db:"customer_id"`
	Timestamp      time.Time  `json:"timestamp" db:"timestamp"`
	ConsumptionKWh *float64   `json:"consumption_kwh,omitempty" db:"consumption_kwh"`
	ProductionKWh  *float64   `json:"production_kwh,omitempty" db:"production_kwh"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// CreateReadingRequest represents the request to record a reading
type CreateReadingRequest struct {
	CustomerID     uuid.UUID `json:"customer_id" binding:"required"`
	Timestamp      time.Time `json:"timestamp" binding:"required" example:"2024-03-20T13:00:00Z"`
	ConsumptionKWh *float64  `json:"consumption_kwh,omitempty" example:"10.5"`
	ProductionKWh  *float64  `json:"production_kwh,omitempty" example:"4.2"`
}
