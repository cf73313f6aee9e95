// Package cache provides byte-value caching for fetched genealogy records.
//
// The [Cache] interface has three implementations:
//   - [FileCache]: entries stored as files under a directory (CLI default)
//   - [RedisCache]: entries stored in Redis (shared or long-lived setups)
//   - [NullCache]: stores nothing (testing, --no-cache)
//
// Keys are arbitrary strings; use [RecordKey] for genealogy record entries so
// all backends agree on the namespace.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache stores opaque byte values under string keys with optional expiry.
type Cache interface {
	// Get retrieves a value. The second return value is false on a miss;
	// expired entries count as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// RecordKey returns the cache key for a Math Genealogy record id.
func RecordKey(id int) string {
	return fmt.Sprintf("record:%d", id)
}
