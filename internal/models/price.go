package models

import (
	"time"

	"github.com/google/uuid"
)

// PriceSample represents a market clearing price at one instant. Timestamps
// are unique; readings are joined to prices on exact timestamp equality.
type PriceSample struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Timestamp   time.Time `json:"timestamp" db:"timestamp"`
	PriceEURKWh float64   `json:"price_eur_kwh" db:"price_eur_kwh"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CreatePriceRequest represents the request to record a price sample
type CreatePriceRequest struct {
	Timestamp   time.Time `json:"timestamp" binding:"required" example:"2024-03-20T13:00:00Z"`
	PriceEURKWh *float64  `json:"price_eur_kwh" binding:"required" example:"0.095"`
}

// UpdatePriceRequest represents the request to modify the value of an
// existing price sample. The timestamp cannot be changed.
type UpdatePriceRequest struct {
	PriceEURKWh *float64 `json:"price_eur_kwh" binding:"required" example:"0.102"`
}
