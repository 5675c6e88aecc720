package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_FixedWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	l := New(client, "verify:", 3, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "a@b.com")
		require.NoError(t, err)
		assert.True(t, ok, "call %d", i+1)
	}

	ok, err := l.Allow(ctx, "a@b.com")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = l.Allow(ctx, "other@b.com")
	require.NoError(t, err)
	assert.True(t, ok, "keys are independent")

	mr.FastForward(time.Hour + time.Second)

	ok, err = l.Allow(ctx, "a@b.com")
	require.NoError(t, err)
	assert.True(t, ok, "window resets")
}

func TestLimiter_NilAllows(t *testing.T) {
	var l *Limiter
	ok, err := l.Allow(context.Background(), "x")
	assert.NoError(t, err)
	assert.True(t, ok)

	assert.Nil(t, New(nil, "p:", 5, time.Hour))
}
