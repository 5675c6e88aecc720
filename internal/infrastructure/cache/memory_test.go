package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

type payload struct {
	Data []string `json:"data"`
	Page int      `json:"page"`
}

func TestMemoryCache_HitBeforeExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewMemoryCache(WithClock(clock.Now))
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "tools:list:/api/tools", payload{Data: []string{"a"}, Page: 1}, time.Minute))

	var got payload
	found, err := c.Get(ctx, "tools:list:/api/tools", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"a"}, got.Data)

	clock.Advance(59 * time.Second)
	found, err = c.Get(ctx, "tools:list:/api/tools", &got)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestMemoryCache_MissAfterTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewMemoryCache(WithClock(clock.Now))
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", payload{Page: 2}, time.Minute))
	clock.Advance(time.Minute)

	var got payload
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, got.Page)
	assert.Equal(t, 0, c.Len(), "expired entry is dropped on read")
}

func TestMemoryCache_SetOverwritesExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewMemoryCache(WithClock(clock.Now))
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", payload{Page: 1}, time.Second))
	clock.Advance(2 * time.Second)
	require.NoError(t, c.Set(ctx, "k", payload{Page: 3}, time.Second))

	var got payload
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3, got.Page)
}

func TestMemoryCache_DeletePattern(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "tools:list:/api/tools?page=1", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "tools:list:/api/tools?page=2", 2, time.Minute))
	require.NoError(t, c.Set(ctx, "blog:list:/api/blog/posts", 3, time.Minute))

	require.NoError(t, c.DeletePattern(ctx, "tools:list:*"))

	var n int
	found, _ := c.Get(ctx, "tools:list:/api/tools?page=1", &n)
	assert.False(t, found)
	found, _ = c.Get(ctx, "blog:list:/api/blog/posts", &n)
	assert.True(t, found)
	assert.Equal(t, 3, n)
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = c.Set(ctx, "shared", i, time.Minute)
		}(i)
		go func() {
			defer wg.Done()
			var v int
			_, _ = c.Get(ctx, "shared", &v)
		}()
	}
	wg.Wait()

	var v int
	found, err := c.Get(ctx, "shared", &v)
	require.NoError(t, err)
	assert.True(t, found)
}
