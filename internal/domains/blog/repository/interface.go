package repository

import (
	"context"

	"toolsail-backend/internal/domains/blog/model"
)

type Repository interface {
	// Posts
	ListPosts(ctx context.Context, filter model.PostFilter) ([]*model.Post, int64, error)
	GetPostByID(ctx context.Context, id string) (*model.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*model.Post, error)
	PostSlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	CreatePost(ctx context.Context, p *model.Post) error
	UpdatePost(ctx context.Context, p *model.Post) error
	DeletePost(ctx context.Context, id string) error
	IncrementPostViews(ctx context.Context, id string) error

	// Categories
	ListCategories(ctx context.Context) ([]*model.BlogCategory, error)
	GetCategoryByID(ctx context.Context, id string) (*model.BlogCategory, error)
	CategorySlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	CountPostsInCategory(ctx context.Context, id string) (int64, error)
	CreateCategory(ctx context.Context, c *model.BlogCategory) error
	UpdateCategory(ctx context.Context, c *model.BlogCategory) error
	DeleteCategory(ctx context.Context, id string) error
}
