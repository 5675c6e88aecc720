// Package ratelimit cung cấp fixed-window rate limiter trên Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter đếm số lần gọi cho mỗi key trong một cửa sổ cố định
type Limiter struct {
	client redis.UniversalClient
	prefix string
	max    int
	window time.Duration
}

// New trả nil khi max <= 0 hoặc không có Redis; caller coi nil là "không giới hạn"
func New(client redis.UniversalClient, prefix string, max int, window time.Duration) *Limiter {
	if client == nil || max <= 0 {
		return nil
	}
	return &Limiter{client: client, prefix: prefix, max: max, window: window}
}

// Allow tăng counter của key; false khi vượt quá max trong cửa sổ hiện tại.
// Nil limiter luôn cho phép.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	if l == nil {
		return true, nil
	}

	fullKey := l.prefix + key
	count, err := l.client.Incr(ctx, fullKey).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, fullKey, l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}

	return count <= int64(l.max), nil
}
