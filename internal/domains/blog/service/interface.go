package service

import (
	"context"

	"toolsail-backend/internal/domains/blog/model"
	"toolsail-backend/internal/shared"
	"toolsail-backend/internal/shared/pagination"
)

type ServiceInterface interface {
	// Public
	ListPublished(ctx context.Context, q model.PostListQuery) ([]*model.Post, pagination.Meta, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*model.Post, error)
	ListCategories(ctx context.Context) ([]*model.BlogCategory, error)

	// Admin posts
	ListAll(ctx context.Context, p shared.Principal, q model.PostListQuery) ([]*model.Post, pagination.Meta, error)
	CreatePost(ctx context.Context, p shared.Principal, req model.CreatePostRequest) (*model.Post, error)
	UpdatePost(ctx context.Context, p shared.Principal, id string, req model.UpdatePostRequest) (*model.Post, error)
	DeletePost(ctx context.Context, p shared.Principal, id string) error

	// Admin categories
	CreateCategory(ctx context.Context, p shared.Principal, req model.CreateCategoryRequest) (*model.BlogCategory, error)
	UpdateCategory(ctx context.Context, p shared.Principal, id string, req model.UpdateCategoryRequest) (*model.BlogCategory, error)
	DeleteCategory(ctx context.Context, p shared.Principal, id string) error
}
