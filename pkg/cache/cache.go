// Package cache memoizes analysis results and rendered artifacts.
//
// Everything stored here can be recomputed from its key's inputs; entries
// carry a TTL and a miss is never an error. Three backends are provided:
//
//   - [NullCache]: stores nothing, used with --no-cache
//   - [FileCache]: one JSON file per entry under the user cache directory
//   - [RedisCache]: shared cache for the HTTP server
//
// Keys are built by a [Keyer] so that backends never interpret them.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	// AnalysisTTL bounds how long an analysis result is reused.
	AnalysisTTL = 7 * 24 * time.Hour

	// ArtifactTTL bounds how long a rendered artifact is reused.
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key-value store with expiry.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
