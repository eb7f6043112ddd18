package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/loom/pkg/cache"
)

func newCache[V any](t *testing.T, opts ...cache.MemoryOption) *cache.Memory[V] {
	t.Helper()
	c := cache.NewMemory[V](opts...)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestMemory_GetSet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		c := newCache[string](t)
		require.NoError(t, c.Set(ctx, "greeting", "hello", time.Minute))

		v, err := c.Get(ctx, "greeting")
		require.NoError(t, err)
		require.Equal(t, "hello", v)
	})

	t.Run("miss", func(t *testing.T) {
		t.Parallel()

		c := newCache[string](t)
		_, err := c.Get(ctx, "absent")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("overwrite keeps one record", func(t *testing.T) {
		t.Parallel()

		c := newCache[int](t)
		require.NoError(t, c.Set(ctx, "n", 1, time.Minute))
		require.NoError(t, c.Set(ctx, "n", 2, time.Minute))

		v, err := c.Get(ctx, "n")
		require.NoError(t, err)
		require.Equal(t, 2, v)
	})

	t.Run("expired record reads as a miss", func(t *testing.T) {
		t.Parallel()

		c := newCache[string](t, cache.WithCleanupInterval(0))
		require.NoError(t, c.Set(ctx, "k", "v", 10*time.Millisecond))
		time.Sleep(30 * time.Millisecond)

		_, err := c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("zero ttl takes the default", func(t *testing.T) {
		t.Parallel()

		c := newCache[string](t,
			cache.WithDefaultTTL(10*time.Millisecond), cache.WithCleanupInterval(0))
		require.NoError(t, c.Set(ctx, "k", "v", 0))
		time.Sleep(30 * time.Millisecond)

		_, err := c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("negative ttl never expires", func(t *testing.T) {
		t.Parallel()

		c := newCache[string](t,
			cache.WithDefaultTTL(time.Millisecond), cache.WithCleanupInterval(0))
		require.NoError(t, c.Set(ctx, "k", "v", -1))
		time.Sleep(20 * time.Millisecond)

		v, err := c.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, "v", v)
	})
}

func TestMemory_LRU(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("oldest record is evicted at capacity", func(t *testing.T) {
		t.Parallel()

		c := newCache[int](t, cache.WithMaxEntries(2))
		require.NoError(t, c.Set(ctx, "a", 1, -1))
		require.NoError(t, c.Set(ctx, "b", 2, -1))
		require.NoError(t, c.Set(ctx, "c", 3, -1))

		_, err := c.Get(ctx, "a")
		require.ErrorIs(t, err, cache.ErrNotFound)
		for _, k := range []string{"b", "c"} {
			_, err := c.Get(ctx, k)
			require.NoError(t, err)
		}
	})

	t.Run("reading refreshes recency", func(t *testing.T) {
		t.Parallel()

		c := newCache[int](t, cache.WithMaxEntries(2))
		require.NoError(t, c.Set(ctx, "a", 1, -1))
		require.NoError(t, c.Set(ctx, "b", 2, -1))

		_, err := c.Get(ctx, "a")
		require.NoError(t, err)
		require.NoError(t, c.Set(ctx, "c", 3, -1)) // b is now the oldest

		_, err = c.Get(ctx, "b")
		require.ErrorIs(t, err, cache.ErrNotFound)
		_, err = c.Get(ctx, "a")
		require.NoError(t, err)
	})

	t.Run("overwriting at capacity does not evict", func(t *testing.T) {
		t.Parallel()

		c := newCache[int](t, cache.WithMaxEntries(2))
		require.NoError(t, c.Set(ctx, "a", 1, -1))
		require.NoError(t, c.Set(ctx, "b", 2, -1))
		require.NoError(t, c.Set(ctx, "a", 10, -1))

		v, err := c.Get(ctx, "b")
		require.NoError(t, err)
		require.Equal(t, 2, v)
	})
}

func TestMemory_DeleteHasClear(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("delete removes the record", func(t *testing.T) {
		t.Parallel()

		c := newCache[string](t)
		require.NoError(t, c.Set(ctx, "k", "v", -1))
		require.NoError(t, c.Delete(ctx, "k"))
		require.NoError(t, c.Delete(ctx, "k")) // absent is fine

		_, err := c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("has sees live records only", func(t *testing.T) {
		t.Parallel()

		c := newCache[string](t, cache.WithCleanupInterval(0))
		require.NoError(t, c.Set(ctx, "live", "v", -1))
		require.NoError(t, c.Set(ctx, "dead", "v", 5*time.Millisecond))
		time.Sleep(20 * time.Millisecond)

		ok, err := c.Has(ctx, "live")
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = c.Has(ctx, "dead")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("clear empties everything", func(t *testing.T) {
		t.Parallel()

		c := newCache[string](t)
		require.NoError(t, c.Set(ctx, "a", "1", -1))
		require.NoError(t, c.Set(ctx, "b", "2", -1))
		require.NoError(t, c.Clear(ctx))

		_, err := c.Get(ctx, "a")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})
}

func TestMemory_OnEvict(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("fires on LRU pressure and delete", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var gone []string

		c := newCache[int](t, cache.WithMaxEntries(1))
		c.OnEvict(func(key string, _ int) {
			mu.Lock()
			gone = append(gone, key)
			mu.Unlock()
		})

		require.NoError(t, c.Set(ctx, "a", 1, -1))
		require.NoError(t, c.Set(ctx, "b", 2, -1)) // evicts a
		require.NoError(t, c.Delete(ctx, "b"))

		mu.Lock()
		defer mu.Unlock()
		require.Equal(t, []string{"a", "b"}, gone)
	})

	t.Run("fires once per record on clear", func(t *testing.T) {
		t.Parallel()

		var evicted atomic.Int32
		c := newCache[int](t)
		c.OnEvict(func(string, int) { evicted.Add(1) })

		require.NoError(t, c.Set(ctx, "a", 1, -1))
		require.NoError(t, c.Set(ctx, "b", 2, -1))
		require.NoError(t, c.Clear(ctx))
		require.Equal(t, int32(2), evicted.Load())
	})
}

func TestMemory_Close(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	c := cache.NewMemory[string]()
	require.NoError(t, c.Set(ctx, "k", "v", -1))
	require.NoError(t, c.Close())
	require.NoError(t, c.Close()) // idempotent

	require.ErrorIs(t, c.Set(ctx, "x", "y", -1), cache.ErrClosed)
	require.ErrorIs(t, c.Delete(ctx, "k"), cache.ErrClosed)
	require.ErrorIs(t, c.Clear(ctx), cache.ErrClosed)
}

func TestGetOrSet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("computes on miss and caches", func(t *testing.T) {
		t.Parallel()

		c := newCache[string](t)
		var calls atomic.Int32

		compute := func(context.Context) (string, time.Duration, error) {
			calls.Add(1)
			return "built", -1, nil
		}

		v, err := cache.GetOrSet(ctx, c, "page", compute)
		require.NoError(t, err)
		require.Equal(t, "built", v)

		v, err = cache.GetOrSet(ctx, c, "page", compute)
		require.NoError(t, err)
		require.Equal(t, "built", v)
		require.Equal(t, int32(1), calls.Load())
	})

	t.Run("failed computation is not cached", func(t *testing.T) {
		t.Parallel()

		c := newCache[string](t)
		boom := errors.New("backend down")

		_, err := cache.GetOrSet(ctx, c, "flaky",
			func(context.Context) (string, time.Duration, error) { return "", 0, boom })
		require.ErrorIs(t, err, boom)

		v, err := cache.GetOrSet(ctx, c, "flaky",
			func(context.Context) (string, time.Duration, error) { return "ok", -1, nil })
		require.NoError(t, err)
		require.Equal(t, "ok", v)
	})

	t.Run("concurrent misses collapse into one computation", func(t *testing.T) {
		t.Parallel()

		c := newCache[string](t)
		var calls atomic.Int32
		gate := make(chan struct{})

		var wg sync.WaitGroup
		for range 10 {
			wg.Go(func() {
				<-gate
				v, err := cache.GetOrSet(ctx, c, "shared",
					func(context.Context) (string, time.Duration, error) {
						calls.Add(1)
						time.Sleep(10 * time.Millisecond)
						return "once", -1, nil
					})
				require.NoError(t, err)
				require.Equal(t, "once", v)
			})
		}
		close(gate)
		wg.Wait()

		require.Equal(t, int32(1), calls.Load())
	})
}
