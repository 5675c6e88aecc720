package service

import (
	"context"

	"toolsail-backend/internal/domains/category/model"
	"toolsail-backend/internal/shared"
)

type ServiceInterface interface {
	// Public
	List(ctx context.Context) ([]*model.Category, error)
	Tree(ctx context.Context) ([]*model.Category, error)
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)

	// Admin
	Create(ctx context.Context, p shared.Principal, req model.CreateCategoryRequest) (*model.Category, error)
	Update(ctx context.Context, p shared.Principal, id string, req model.UpdateCategoryRequest) (*model.Category, error)
	Delete(ctx context.Context, p shared.Principal, id string) error
}
