// Package logging constructs the application's structured logger.
package logging

import (
	"go.uber.org/zap"
)

// NewLogger creates a new structured logger tagged with the service name
func NewLogger(serviceName string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.InitialFields = map[string]interface{}{
		"service": serviceName,
	}

	return config.Build()
}
