package repository

import (
	"context"

	"toolsail-backend/internal/domains/category/model"
)

// Repository định nghĩa data access cho categories
type Repository interface {
	// Read
	List(ctx context.Context) ([]*model.Category, error)
	GetByID(ctx context.Context, id string) (*model.Category, error)
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
	ListChildren(ctx context.Context, parentID string) ([]*model.Category, error)
	Exists(ctx context.Context, id string) (bool, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	CountChildren(ctx context.Context, id string) (int64, error)
	CountTools(ctx context.Context, id string) (int64, error)

	// Write
	Create(ctx context.Context, c *model.Category) error
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id string) error
}
