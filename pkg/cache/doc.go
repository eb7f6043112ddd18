// Package cache provides a generic TTL cache with optional LRU eviction and
// stampede-safe lazy computation.
//
// [NewMemory] builds the in-process implementation. Reads are O(1) through a
// map; a recency list makes LRU eviction O(1) once WithMaxEntries caps the
// size. Expired records are swept by a background goroutine, so a cache must
// be closed when no longer needed:
//
//	c := cache.NewMemory[string](
//	    cache.WithDefaultTTL(5 * time.Minute),
//	    cache.WithMaxEntries(10000),
//	)
//	defer c.Close()
//
//	c.Set(ctx, "greeting", "hello", 0) // default TTL
//	v, err := c.Get(ctx, "greeting")
//
// TTL semantics for Set: positive expires after the duration, zero applies
// the default TTL, negative pins the record until evicted or deleted.
//
// [Memory.OnEvict] registers a callback that observes every record leaving
// the cache, which is the hook for closing pooled resources held as values.
//
// [GetOrSet] wraps a cache with compute-on-miss. Concurrent misses for one
// key collapse into a single computation via singleflight:
//
//	v, err := cache.GetOrSet(ctx, c, "user:123", func(ctx context.Context) (User, time.Duration, error) {
//	    u, err := repo.FindUser(ctx, "123")
//	    return u, 5 * time.Minute, err
//	})
//
// Misses surface as [ErrNotFound]; writes to a closed cache as [ErrClosed].
package cache
