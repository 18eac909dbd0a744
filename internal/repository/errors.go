package repository

import "errors"

var (
	// Common errors
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("conflict")
	ErrHasAssociatedRecords = errors.New("has associated records")

	// Customer errors
	ErrCustomerNotFound = errors.New("customer not found")
	ErrCustomerDeleted  = errors.New("customer is deleted")
	ErrCustomerActive   = errors.New("customer is not deleted")

	// Reading errors
	ErrDuplicateReading = errors.New("reading already exists for this timestamp")

	// Price errors
	ErrDuplicatePrice = errors.New("price already exists for this timestamp")
	ErrPriceNotFound  = errors.New("price not found")
)
