// Package cache stores computed sizing results and built chart
// configurations keyed by a hash of their inputs.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP service
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// Keys come from a [Keyer] so that every backend namespaces entries the
// same way; [NewScopedKeyer] adds a prefix per tenant or profile.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default entry lifetimes.
const (
	// TTLSizing is the lifetime of a cached sizing result.
	TTLSizing = 24 * time.Hour
	// TTLConfig is the lifetime of a cached chart configuration.
	TTLConfig = 7 * 24 * time.Hour
)
