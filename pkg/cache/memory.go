package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// record is one cached value. A zero deadline means the value never expires.
type record[V any] struct {
	deadline time.Time
	value    V
	key      string
}

func (r *record[V]) expired(now time.Time) bool {
	return !r.deadline.IsZero() && now.After(r.deadline)
}

// Memory is an in-process Cache with TTL expiration and, when WithMaxEntries
// is set, LRU eviction. Lookups go through a map; recency order lives in a
// doubly-linked list with the most recently touched record at the front.
type Memory[V any] struct {
	byKey   map[string]*list.Element
	recency *list.List
	opts    *memoryOptions
	onEvict func(key string, value V)
	done    chan struct{}
	mu      sync.Mutex
	closed  bool
}

// NewMemory builds an in-memory cache. Unless WithCleanupInterval(0) is
// given, a background sweeper drops expired records; callers own the cache
// and must Close it to stop the sweeper.
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	o := defaultMemoryOptions()
	for _, opt := range opts {
		opt(o)
	}

	m := &Memory[V]{
		byKey:   make(map[string]*list.Element),
		recency: list.New(),
		opts:    o,
		done:    make(chan struct{}),
	}
	if o.cleanupInterval > 0 {
		go m.sweep()
	}
	return m
}

// OnEvict registers fn to run for every record leaving the cache, whether by
// LRU pressure, expiry, Delete, or Clear. Useful when values hold resources.
func (m *Memory[V]) OnEvict(fn func(key string, value V)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onEvict = fn
}

// Get returns the value stored under key, marking it as recently used.
// A missing or expired key yields ErrNotFound.
func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	elem, ok := m.byKey[key]
	if !ok {
		return zero, ErrNotFound
	}
	r := elem.Value.(*record[V])
	if r.expired(time.Now()) {
		m.drop(elem)
		return zero, ErrNotFound
	}
	m.recency.MoveToFront(elem)
	return r.value, nil
}

// Set stores value under key. A positive ttl expires the record after that
// duration, zero applies the cache default, negative pins it forever.
func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if ttl == 0 {
		ttl = m.opts.defaultTTL
	}
	var deadline time.Time
	if ttl > 0 {
		deadline = time.Now().Add(ttl)
	}

	if elem, ok := m.byKey[key]; ok {
		r := elem.Value.(*record[V])
		r.value = value
		r.deadline = deadline
		m.recency.MoveToFront(elem)
		return nil
	}

	if m.opts.maxEntries > 0 && len(m.byKey) >= m.opts.maxEntries {
		if oldest := m.recency.Back(); oldest != nil {
			m.drop(oldest)
		}
	}
	m.byKey[key] = m.recency.PushFront(&record[V]{key: key, value: value, deadline: deadline})
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if elem, ok := m.byKey[key]; ok {
		m.drop(elem)
	}
	return nil
}

// Has reports whether key holds a live record, without touching recency.
func (m *Memory[V]) Has(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.byKey[key]
	if !ok {
		return false, nil
	}
	if elem.Value.(*record[V]).expired(time.Now()) {
		m.drop(elem)
		return false, nil
	}
	return true, nil
}

// Clear empties the cache, invoking the eviction callback per record.
func (m *Memory[V]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if m.onEvict != nil {
		for _, elem := range m.byKey {
			r := elem.Value.(*record[V])
			m.onEvict(r.key, r.value)
		}
	}
	m.byKey = make(map[string]*list.Element)
	m.recency.Init()
	return nil
}

// Close stops the sweeper and rejects further writes. Idempotent.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.done)
	}
	return nil
}

func (m *Memory[V]) sweep() {
	ticker := time.NewTicker(m.opts.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case now := <-ticker.C:
			m.mu.Lock()
			for elem := m.recency.Back(); elem != nil; {
				prev := elem.Prev()
				if elem.Value.(*record[V]).expired(now) {
					m.drop(elem)
				}
				elem = prev
			}
			m.mu.Unlock()
		}
	}
}

// drop unlinks elem from both structures. Caller holds mu.
func (m *Memory[V]) drop(elem *list.Element) {
	m.recency.Remove(elem)
	r := elem.Value.(*record[V])
	delete(m.byKey, r.key)
	if m.onEvict != nil {
		m.onEvict(r.key, r.value)
	}
}

var _ Cache[any] = (*Memory[any])(nil)
