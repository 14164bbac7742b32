package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	RedisBackend  = "redis"
	MemoryBackend = "memory"
)

var ErrCacheMiss = errors.New("cache: key not found")

// Cache is the generic key/value store used for tokens, permission sets and
// counters.
type Cache[V any] interface {
	// Get returns the value or ErrCacheMiss.
	Get(ctx context.Context, key string) (V, error)
	// Set stores value under key, with TTL. Zero ttl = no expiration.
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	// Delete removes the key.
	Delete(ctx context.Context, key string) error
	// Incr atomically increments the counter under key and returns the new
	// value. The ttl is applied only when the counter is created.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// Config selects and tunes the cache backend
type Config struct {
	Backend       string        `env:"CACHE_BACKEND" env-default:"memory" validate:"oneof=memory redis"`
	RedisAddr     string        `env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" env-default:"0"`
	PoolSize      int           `env:"REDIS_POOL_SIZE" env-default:"20"`
	OpTimeout     time.Duration `env:"REDIS_OP_TIMEOUT" env-default:"50ms"`
}

// RedisOptions builds client options from the config
func (c *Config) RedisOptions() *RedisOptions {
	return &RedisOptions{
		Addr:            c.RedisAddr,
		Password:        c.RedisPassword,
		DB:              c.RedisDB,
		PoolSize:        c.PoolSize,
		MinIdleConns:    1,
		MaxRetries:      2,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		OpTimeout:       c.OpTimeout,
	}
}

// New returns a cache for the configured backend
func New[V any](cfg *Config) (Cache[V], error) {
	switch cfg.Backend {
	case RedisBackend:
		return NewRedisCache[V](cfg.RedisOptions()), nil
	case MemoryBackend, "":
		return NewMemoryCache[V](), nil
	default:
		return nil, fmt.Errorf("cache: unknown backend %q", cfg.Backend)
	}
}
