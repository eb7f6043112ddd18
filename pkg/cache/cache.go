package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is a generic key-value store with per-entry TTLs.
//
// Set interprets ttl as: positive expires after that duration, zero applies
// the implementation's default, negative never expires.
type Cache[V any] interface {
	// Get returns the value under key, or ErrNotFound when absent or expired.
	Get(ctx context.Context, key string) (V, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value V, ttl time.Duration) error

	// Delete removes key.
	Delete(ctx context.Context, key string) error

	// Has reports whether key holds a live value.
	Has(ctx context.Context, key string) (bool, error)

	// Clear drops every entry.
	Clear(ctx context.Context) error

	// Close releases background resources.
	Close() error
}

// flights deduplicates concurrent misses across GetOrSet calls.
var flights singleflight.Group

type computed[V any] struct {
	val V
	ttl time.Duration
}

// GetOrSet returns the cached value under key, computing and storing it via
// fn on a miss. Concurrent misses for the same key run fn once; the result is
// shared. A failed computation is returned uncached.
func GetOrSet[V any](ctx context.Context, c Cache[V], key string, fn func(ctx context.Context) (V, time.Duration, error)) (V, error) {
	if v, err := c.Get(ctx, key); err == nil {
		return v, nil
	}

	v, err, _ := flights.Do(key, func() (any, error) {
		val, ttl, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		return computed[V]{val: val, ttl: ttl}, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	r := v.(computed[V])
	// Storing is best effort; a closed cache still serves the computed value.
	_ = c.Set(ctx, key, r.val, r.ttl)
	return r.val, nil
}
