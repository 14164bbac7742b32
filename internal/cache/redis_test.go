package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisCache(t *testing.T) (*RedisCache[string], *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	cfg := &Config{RedisAddr: s.Addr(), PoolSize: 4, OpTimeout: 100 * time.Millisecond}
	rc := NewRedisCache[string](cfg.RedisOptions())
	t.Cleanup(func() { _ = rc.Close() })
	return rc, s
}

func TestRedisCacheGetSetDelete(t *testing.T) {
	rc, _ := setupRedisCache(t)
	ctx := context.Background()

	require.NoError(t, rc.Ping(ctx))

	_, err := rc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, rc.Set(ctx, "perm:1", `["admin:users:read"]`, time.Minute))
	v, err := rc.Get(ctx, "perm:1")
	require.NoError(t, err)
	assert.Equal(t, `["admin:users:read"]`, v)

	require.NoError(t, rc.Delete(ctx, "perm:1"))
	_, err = rc.Get(ctx, "perm:1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCacheTTL(t *testing.T) {
	rc, s := setupRedisCache(t)
	ctx := context.Background()

	require.NoError(t, rc.Set(ctx, "k", "v", time.Second))
	s.FastForward(2 * time.Second)
	_, err := rc.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCacheGetUnmarshalError(t *testing.T) {
	rc, s := setupRedisCache(t)
	require.NoError(t, s.Set("raw", "not-json"))

	_, err := rc.Get(context.Background(), "raw")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCacheIncr(t *testing.T) {
	rc, s := setupRedisCache(t)
	ctx := context.Background()

	n, err := rc.Incr(ctx, "rate:u1", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = rc.Incr(ctx, "rate:u1", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.True(t, s.TTL("rate:u1") > 0)

	s.FastForward(2 * time.Hour)
	n, err = rc.Incr(ctx, "rate:u1", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRedisCacheConnectionError(t *testing.T) {
	rc, s := setupRedisCache(t)
	s.Close()

	_, err := rc.Incr(context.Background(), "k", 0)
	assert.Error(t, err)
}
