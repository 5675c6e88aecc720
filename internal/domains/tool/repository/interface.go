package repository

import (
	"context"

	"toolsail-backend/internal/domains/tool/model"
)

type Repository interface {
	List(ctx context.Context, filter model.ListFilter) ([]*model.Tool, int64, error)
	GetByID(ctx context.Context, id string) (*model.Tool, error)
	Create(ctx context.Context, t *model.Tool) error
	Update(ctx context.Context, t *model.Tool) error
	SetPublished(ctx context.Context, id string, published bool) (*model.Tool, error)
	UpdateLogo(ctx context.Context, id, logoURL string) error
	IncrementViewCount(ctx context.Context, id string) error
}
