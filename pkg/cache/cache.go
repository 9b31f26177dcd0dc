// Package cache provides byte caches for layouts and measured heights.
//
// # Backends
//
//   - [NullCache]: stores nothing (caching disabled)
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for multi-instance servers
//   - [MongoCache]: durable cache with a TTL index
//
// All backends implement [Cache] and treat a missing or expired entry as a
// miss rather than an error.
//
// # Keys
//
// A [Keyer] derives keys from content hashes and options, so that identical
// requests share entries. [ScopedKeyer] prefixes every key to separate
// tenants (the HTTP server scopes its keys under "api:").
package cache

import (
	"context"
	"time"
)

// TTLs for each kind of entry.
const (
	// TTLLayout bounds how long a computed layout is reused.
	TTLLayout = 24 * time.Hour

	// TTLHeights bounds how long measured heights survive without updates.
	// Measurements are cheap to keep and expensive to rediscover.
	TTLHeights = 30 * 24 * time.Hour

	// TTLArtifact bounds how long rendered artifacts are reused.
	TTLArtifact = 24 * time.Hour
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get returns the value for key. A miss returns (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
