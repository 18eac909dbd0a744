// Package cache provides the read-through cache used by list and aggregate
// queries. Entries live for a fixed TTL and are never invalidated by writes;
// staleness of up to one TTL window after a write is accepted.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Cache is an opaque get/set byte store with per-entry TTL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
