package repository

import (
	"context"
	"time"

	"toolsail-backend/internal/domains/verification/model"
)

type Repository interface {
	Create(ctx context.Context, t *model.Token) error
	// ListActiveByEmail bỏ qua token đã hết hạn hoặc đã sai maxAttempts lần
	ListActiveByEmail(ctx context.Context, email string, now time.Time, maxAttempts int) ([]*model.Token, error)
	// Consume xoá đúng token id; false nghĩa là request khác đã dùng token trước
	Consume(ctx context.Context, id string) (bool, error)
	RecordFailedAttempt(ctx context.Context, email string, now time.Time) error
	DeleteByEmail(ctx context.Context, email string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
