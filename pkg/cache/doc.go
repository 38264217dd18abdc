// Package cache provides a generic key-value cache with an in-memory LRU
// backend and a stampede-safe GetOrSet helper.
//
// TTL semantics for Set:
//   - Positive duration: the entry expires after this duration
//   - Zero: the cache's default TTL applies
//   - Negative: the entry never expires
//
// The view package keeps one bounded [Memory] per View for parsed
// templates:
//
//	c := cache.NewMemory[any](
//	    cache.WithCleanupInterval(0),
//	    cache.WithMaxEntries(256),
//	)
//	defer c.Close()
//
//	tmpl, err := cache.GetOrSet(ctx, c, key, func(ctx context.Context) (any, time.Duration, error) {
//	    t, err := parse(src)
//	    return t, -1, err
//	})
package cache
