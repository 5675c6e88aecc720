package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client), mr
}

func TestRedisCache_SetGetExpire(t *testing.T) {
	c, mr := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", payload{Data: []string{"x"}}, time.Minute))

	var got payload
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"x"}, got.Data)

	mr.FastForward(time.Minute + time.Second)

	found, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_DeletePattern(t *testing.T) {
	c, mr := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "tools:list:a", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "tools:list:b", 2, time.Minute))
	require.NoError(t, c.Set(ctx, "blog:list:a", 3, time.Minute))

	require.NoError(t, c.DeletePattern(ctx, "tools:list:*"))

	assert.False(t, mr.Exists("tools:list:a"))
	assert.False(t, mr.Exists("tools:list:b"))
	assert.True(t, mr.Exists("blog:list:a"))
	assert.NoError(t, c.Ping(ctx))
}
