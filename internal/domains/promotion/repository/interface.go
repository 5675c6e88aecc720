package repository

import (
	"context"
	"time"

	"toolsail-backend/internal/domains/promotion/model"
)

type PromotionRepository interface {
	// ListLive trả các promotion active trong cửa sổ hiệu lực tại now (placement rỗng = mọi placement)
	ListLive(ctx context.Context, placement string, now time.Time) ([]*model.Promotion, error)
	List(ctx context.Context, filter model.ListFilter) ([]*model.Promotion, int64, error)
	GetByID(ctx context.Context, id string) (*model.Promotion, error)
	Create(ctx context.Context, p *model.Promotion) error
	UpdateStatus(ctx context.Context, id string, active bool, now time.Time) (*model.Promotion, error)
	Delete(ctx context.Context, id string) error
	// DeactivateExpired tắt các promotion đã qua EndsAt, trả số dòng bị ảnh hưởng
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}
