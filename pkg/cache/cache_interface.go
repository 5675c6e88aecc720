package cache

import (
	"context"
	"time"
)

// Cache định nghĩa contract cho response cache.
// Cache chỉ mang tính advisory: caller luôn phải có đường fallback về store
// khi miss hoặc khi Get/Set trả lỗi.
type Cache interface {
	// Get đọc key và unmarshal vào dest.
	// - found = true: hit, dest đã được ghi
	// - found = false: miss (hoặc đã hết hạn), dest giữ nguyên
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set lưu value với expiry tuyệt đối = now + ttl
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete xóa các keys
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern xóa mọi key match pattern dạng "prefix*"
	DeletePattern(ctx context.Context, pattern string) error

	// Ping kiểm tra backend còn sống
	Ping(ctx context.Context) error
}
