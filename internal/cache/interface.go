package cache

import (
	"context"
	"time"
)

// Cache is the key/value store the data access layer reads through.
// Single entities are stored as one value per key; query results are stored
// as ordered collections supporting bounded range reads and appends.
type Cache interface {
	// Exists reports whether a key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// Get returns the value stored under key, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under key with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// GetRange returns the collection elements between start and stop
	// (inclusive, zero-based). A missing key yields an empty result.
	GetRange(ctx context.Context, key string, start, stop int64) ([][]byte, error)

	// Append adds values to the end of the collection under key, preserving
	// argument order, and refreshes the collection's TTL.
	Append(ctx context.Context, key string, ttl time.Duration, values ...[]byte) error

	Close() error
}
