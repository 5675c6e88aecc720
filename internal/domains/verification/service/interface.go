package service

import (
	"context"

	"toolsail-backend/internal/domains/verification/model"
)

type ServiceInterface interface {
	// Issue phát mã mới và gửi email. Lỗi gửi email không được trả về.
	Issue(ctx context.Context, req model.IssueRequest) error
	// Verify kiểm tra mã; mã khớp thì mọi token của email bị tiêu thụ
	Verify(ctx context.Context, email, code string) (bool, error)
	CleanupExpired(ctx context.Context) (int64, error)
}

// Notifier là phần gửi mã của email Dispatcher (không trả lỗi)
type Notifier interface {
	SendVerificationEmail(ctx context.Context, to, code string)
}

// Limiter giới hạn số lần phát mã cho mỗi email
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
