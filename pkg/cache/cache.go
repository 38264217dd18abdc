package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is a generic key-value cache with TTL support.
type Cache[V any] interface {
	// Get retrieves a value by key.
	// Returns ErrNotFound if the key does not exist or has expired.
	Get(ctx context.Context, key string) (V, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value V, ttl time.Duration) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Has reports whether a key exists and has not expired.
	Has(ctx context.Context, key string) (bool, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Close releases background resources.
	Close() error
}

// LoadFunc computes a value missing from the cache together with the TTL
// to store it under.
type LoadFunc[V any] func(ctx context.Context) (V, time.Duration, error)

var group singleflight.Group

type loaded[V any] struct {
	val V
}

// GetOrSet returns the cached value for key, or calls fn to compute and
// store it. Concurrent misses on the same key share a single fn call, so
// keys must be unique across caches that run at the same time.
//
// Errors from fn are returned as is and nothing is cached.
func GetOrSet[V any](ctx context.Context, c Cache[V], key string, fn LoadFunc[V]) (V, error) {
	if v, err := c.Get(ctx, key); err == nil {
		return v, nil
	}

	res, err, _ := group.Do(key, func() (any, error) {
		val, ttl, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		// Store inside the flight so that callers arriving after it ends hit the cache.
		_ = c.Set(ctx, key, val, ttl)
		return loaded[V]{val: val}, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(loaded[V]).val, nil
}
