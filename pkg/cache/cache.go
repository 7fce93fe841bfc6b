// Package cache stores tiled layouts and rendered artifacts.
//
// Entries are opaque byte slices addressed by string keys. A [Keyer]
// derives those keys from the content hash of a scene and the options
// that influence the result, so a cached layout is reused only when the
// scene and the tiling inputs are identical.
//
// Backends:
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared cache for several `gridtile serve` instances
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. A miss is not
	// an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Default entry lifetimes.
const (
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 24 * time.Hour
)
