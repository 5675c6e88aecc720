package service

import (
	"context"

	"toolsail-backend/internal/domains/promotion/model"
	toolmodel "toolsail-backend/internal/domains/tool/model"
	"toolsail-backend/internal/shared"
	"toolsail-backend/internal/shared/pagination"
)

type ServiceInterface interface {
	// Public
	ListActive(ctx context.Context, placement string) ([]*model.Promotion, error)

	// Admin
	List(ctx context.Context, p shared.Principal, q model.ListQuery) ([]*model.Promotion, pagination.Meta, error)
	Create(ctx context.Context, p shared.Principal, req model.CreatePromotionRequest) (*model.Promotion, error)
	UpdateStatus(ctx context.Context, p shared.Principal, id string, req model.UpdateStatusRequest) (*model.Promotion, error)
	Delete(ctx context.Context, p shared.Principal, id string) error

	// Worker
	DeactivateExpired(ctx context.Context) (int64, error)
}

// ToolLookup là phần của tool repository dùng để kiểm tra tool tồn tại
type ToolLookup interface {
	GetByID(ctx context.Context, id string) (*toolmodel.Tool, error)
}
