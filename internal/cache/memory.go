package cache

import (
	"context"
	"sync"
	"time"
)

type entry[V any] struct {
	value   V
	counter int64
	expires int64 // unix nanos, zero = never
}

func (e entry[V]) expired(now int64) bool {
	return e.expires > 0 && now > e.expires
}

type shard[V any] struct {
	sync.Mutex
	items map[string]entry[V]
}

// MemoryCache is a sharded in-process cache with a background janitor.
type MemoryCache[V any] struct {
	shards []*shard[V]
	quit   chan struct{}
	once   sync.Once
}

// NewMemoryCache creates a 64-shard cache swept every second.
func NewMemoryCache[V any]() *MemoryCache[V] {
	return NewMemoryCacheWithOptions[V](64, time.Second)
}

// NewMemoryCacheWithOptions allows customizing shard count & janitor interval.
func NewMemoryCacheWithOptions[V any](shardCount int, sweepEvery time.Duration) *MemoryCache[V] {
	if shardCount < 1 {
		shardCount = 1
	}
	mc := &MemoryCache[V]{
		shards: make([]*shard[V], shardCount),
		quit:   make(chan struct{}),
	}
	for i := range mc.shards {
		mc.shards[i] = &shard[V]{items: make(map[string]entry[V])}
	}
	go mc.janitor(sweepEvery)
	return mc
}

// Stop terminates the janitor goroutine. Safe to call more than once.
func (mc *MemoryCache[V]) Stop() {
	mc.once.Do(func() { close(mc.quit) })
}

func (mc *MemoryCache[V]) shardFor(key string) *shard[V] {
	const offset, prime = 2166136261, 16777619
	h := uint32(offset)
	for i := 0; i < len(key); i++ {
		h ^= uint32(key[i])
		h *= prime
	}
	return mc.shards[int(h%uint32(len(mc.shards)))]
}

func expiryFrom(ttl time.Duration) int64 {
	if ttl <= 0 {
		return 0
	}
	return time.Now().Add(ttl).UnixNano()
}

func (mc *MemoryCache[V]) Get(_ context.Context, key string) (V, error) {
	var zero V
	s := mc.shardFor(key)
	s.Lock()
	defer s.Unlock()

	e, ok := s.items[key]
	if !ok {
		return zero, ErrCacheMiss
	}
	if e.expired(time.Now().UnixNano()) {
		delete(s.items, key)
		return zero, ErrCacheMiss
	}
	return e.value, nil
}

func (mc *MemoryCache[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	s := mc.shardFor(key)
	s.Lock()
	s.items[key] = entry[V]{value: value, expires: expiryFrom(ttl)}
	s.Unlock()
	return nil
}

func (mc *MemoryCache[V]) Delete(_ context.Context, key string) error {
	s := mc.shardFor(key)
	s.Lock()
	delete(s.items, key)
	s.Unlock()
	return nil
}

// Incr keeps counters beside values. Counters are only readable through Incr.
func (mc *MemoryCache[V]) Incr(_ context.Context, key string, ttl time.Duration) (int64, error) {
	s := mc.shardFor(key)
	s.Lock()
	defer s.Unlock()

	e, ok := s.items[key]
	if !ok || e.expired(time.Now().UnixNano()) {
		e = entry[V]{expires: expiryFrom(ttl)}
	}
	e.counter++
	s.items[key] = e
	return e.counter, nil
}

func (mc *MemoryCache[V]) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			mc.sweep(time.Now().UnixNano())
		case <-mc.quit:
			return
		}
	}
}

func (mc *MemoryCache[V]) sweep(now int64) {
	for _, s := range mc.shards {
		s.Lock()
		for k, e := range s.items {
			if e.expired(now) {
				delete(s.items, k)
			}
		}
		s.Unlock()
	}
}
