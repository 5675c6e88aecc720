package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
)

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryCache là cache trong process, mất khi restart.
// Hết hạn được kiểm tra lúc đọc; entry hết hạn bị xóa và coi như miss.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type MemoryOption func(*MemoryCache)

// WithClock thay clock mặc định (dùng trong test)
func WithClock(now func() time.Time) MemoryOption {
	return func(c *MemoryCache) {
		c.now = now
	}
}

func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *MemoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		cacheMisses.Inc()
		return false, nil
	}

	if !c.now().Before(entry.expiresAt) {
		c.mu.Lock()
		// entry có thể đã được Set lại giữa hai lần lock
		if current, still := c.entries[key]; still && !c.now().Before(current.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		cacheMisses.Inc()
		return false, nil
	}

	if err := json.Unmarshal(entry.payload, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	cacheHits.Inc()
	return true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cached %s: %w", key, err)
	}

	c.mu.Lock()
	c.entries[key] = memoryEntry{payload: payload, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	c.mu.Unlock()
	return nil
}

// DeletePattern hỗ trợ pattern "prefix*" hoặc key chính xác
func (c *MemoryCache) DeletePattern(_ context.Context, pattern string) error {
	prefix, wildcard := strings.CutSuffix(pattern, "*")

	c.mu.Lock()
	for key := range c.entries {
		if (wildcard && strings.HasPrefix(key, prefix)) || key == pattern {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Ping(context.Context) error {
	return nil
}

// Len trả về số entry đang giữ, kể cả entry đã hết hạn nhưng chưa bị đọc
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
