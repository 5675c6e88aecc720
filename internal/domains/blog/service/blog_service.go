package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"toolsail-backend/internal/domains/blog/model"
	"toolsail-backend/internal/domains/blog/repository"
	"toolsail-backend/internal/shared"
	"toolsail-backend/internal/shared/pagination"
	"toolsail-backend/internal/shared/utils"
	"toolsail-backend/pkg/cache"
	"toolsail-backend/pkg/logger"
)

type blogService struct {
	repo  repository.Repository
	cache cache.Cache
	now   func() time.Time
}

func NewBlogService(repo repository.Repository, c cache.Cache) ServiceInterface {
	return &blogService{repo: repo, cache: c, now: time.Now}
}

// ========================================
// PUBLIC
// ========================================

func (s *blogService) ListPublished(ctx context.Context, q model.PostListQuery) ([]*model.Post, pagination.Meta, error) {
	published := true
	return s.list(ctx, q, &published)
}

func (s *blogService) GetPublishedBySlug(ctx context.Context, slug string) (*model.Post, error) {
	post, err := s.repo.GetPostBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return nil, err
	}
	if !post.IsPublished {
		return nil, model.ErrPostNotFound
	}

	if err := s.repo.IncrementPostViews(ctx, post.ID); err != nil {
		logger.Error("Increment post views failed", err)
	} else {
		post.ViewCount++
	}
	return post, nil
}

func (s *blogService) ListCategories(ctx context.Context) ([]*model.BlogCategory, error) {
	return s.repo.ListCategories(ctx)
}

// ========================================
// ADMIN: POSTS
// ========================================

func (s *blogService) ListAll(ctx context.Context, p shared.Principal, q model.PostListQuery) ([]*model.Post, pagination.Meta, error) {
	if err := p.RequireAdmin(); err != nil {
		return nil, pagination.Meta{}, err
	}
	return s.list(ctx, q, nil)
}

func (s *blogService) CreatePost(ctx context.Context, p shared.Principal, req model.CreatePostRequest) (*model.Post, error) {
	if err := p.RequireAdmin(); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	slug, err := s.postSlug(ctx, req.Slug, req.Title, "")
	if err != nil {
		return nil, err
	}

	categoryID := utils.NullableString(req.CategoryID)
	if err := s.checkCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	now := s.now()
	post := &model.Post{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Slug:        slug,
		Excerpt:     utils.NullableString(req.Excerpt),
		Content:     req.Content,
		CoverImage:  utils.NullableString(req.CoverImage),
		CategoryID:  categoryID,
		Tags:        normalizeTags(req.Tags),
		AuthorName:  utils.NullableString(req.AuthorName),
		IsPublished: req.IsPublished,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if post.IsPublished {
		post.PublishedAt = &now
	}

	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	logger.Info("Blog post created", map[string]interface{}{"id": post.ID, "slug": post.Slug, "by": p.UserID})
	return post, nil
}

func (s *blogService) UpdatePost(ctx context.Context, p shared.Principal, id string, req model.UpdatePostRequest) (*model.Post, error) {
	if err := p.RequireAdmin(); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	post, err := s.repo.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		post.Title = strings.TrimSpace(*req.Title)
	}
	if req.Slug != nil {
		if post.Slug, err = s.postSlug(ctx, *req.Slug, post.Title, post.ID); err != nil {
			return nil, err
		}
	}
	if req.Excerpt != nil {
		post.Excerpt = utils.NullableString(*req.Excerpt)
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.CoverImage != nil {
		post.CoverImage = utils.NullableString(*req.CoverImage)
	}
	if req.CategoryID != nil {
		categoryID := utils.NullableString(*req.CategoryID)
		if err := s.checkCategory(ctx, categoryID); err != nil {
			return nil, err
		}
		post.CategoryID = categoryID
	}
	if req.Tags != nil {
		post.Tags = normalizeTags(*req.Tags)
	}
	if req.AuthorName != nil {
		post.AuthorName = utils.NullableString(*req.AuthorName)
	}

	now := s.now()
	if req.IsPublished != nil {
		// publishedAt giữ mốc publish đầu tiên
		if *req.IsPublished && post.PublishedAt == nil {
			post.PublishedAt = &now
		}
		post.IsPublished = *req.IsPublished
	}
	post.UpdatedAt = now

	if err := s.repo.UpdatePost(ctx, post); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return post, nil
}

func (s *blogService) DeletePost(ctx context.Context, p shared.Principal, id string) error {
	if err := p.RequireAdmin(); err != nil {
		return err
	}
	if err := s.repo.DeletePost(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	logger.Info("Blog post deleted", map[string]interface{}{"id": id, "by": p.UserID})
	return nil
}

// ========================================
// ADMIN: CATEGORIES
// ========================================

func (s *blogService) CreateCategory(ctx context.Context, p shared.Principal, req model.CreateCategoryRequest) (*model.BlogCategory, error) {
	if err := p.RequireAdmin(); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	slug, err := s.categorySlug(ctx, req.Slug, req.Name, "")
	if err != nil {
		return nil, err
	}

	now := s.now()
	c := &model.BlogCategory{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug,
		Description: utils.NullableString(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return c, nil
}

func (s *blogService) UpdateCategory(ctx context.Context, p shared.Principal, id string, req model.UpdateCategoryRequest) (*model.BlogCategory, error) {
	if err := p.RequireAdmin(); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		if c.Slug, err = s.categorySlug(ctx, *req.Slug, c.Name, c.ID); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		c.Description = utils.NullableString(*req.Description)
	}
	c.UpdatedAt = s.now()

	if err := s.repo.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return c, nil
}

// DeleteCategory bị từ chối khi còn post tham chiếu
func (s *blogService) DeleteCategory(ctx context.Context, p shared.Principal, id string) error {
	if err := p.RequireAdmin(); err != nil {
		return err
	}

	if _, err := s.repo.GetCategoryByID(ctx, id); err != nil {
		return err
	}

	n, err := s.repo.CountPostsInCategory(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return model.ErrCategoryInUse
	}

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

// ========================================
// HELPERS
// ========================================

func (s *blogService) list(ctx context.Context, q model.PostListQuery, published *bool) ([]*model.Post, pagination.Meta, error) {
	params := pagination.Parse(q.Page, q.Limit)

	posts, total, err := s.repo.ListPosts(ctx, model.PostFilter{
		CategorySlug: strings.ToLower(strings.TrimSpace(q.Category)),
		Tag:          strings.ToLower(strings.TrimSpace(q.Tag)),
		Published:    published,
		Sort:         q.Sort,
		Limit:        params.Limit,
		Offset:       params.Offset,
	})
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return posts, pagination.NewMeta(params.Page, params.Limit, total), nil
}

func (s *blogService) postSlug(ctx context.Context, raw, title, excludeID string) (string, error) {
	slug := slugFrom(raw, title)
	if slug == "" {
		return "", model.ErrInvalidSlug
	}
	exists, err := s.repo.PostSlugExists(ctx, slug, excludeID)
	if err != nil {
		return "", err
	}
	if exists {
		return "", model.ErrSlugExists
	}
	return slug, nil
}

func (s *blogService) categorySlug(ctx context.Context, raw, name, excludeID string) (string, error) {
	slug := slugFrom(raw, name)
	if slug == "" {
		return "", model.ErrInvalidSlug
	}
	exists, err := s.repo.CategorySlugExists(ctx, slug, excludeID)
	if err != nil {
		return "", err
	}
	if exists {
		return "", model.ErrSlugExists
	}
	return slug, nil
}

func slugFrom(raw, fallback string) string {
	if strings.TrimSpace(raw) == "" {
		raw = fallback
	}
	return utils.GenerateSlug(raw)
}

func (s *blogService) checkCategory(ctx context.Context, id *string) error {
	if id == nil {
		return nil
	}
	if _, err := s.repo.GetCategoryByID(ctx, *id); err != nil {
		if err == model.ErrCategoryNotFound {
			return model.ErrCategoryMissing
		}
		return err
	}
	return nil
}

// normalizeTags: lowercase, bỏ trùng, giữ thứ tự
func normalizeTags(tags []string) pq.StringArray {
	out := pq.StringArray{}
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func (s *blogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, shared.CacheKeyBlogList+"*"); err != nil {
		logger.Error("Blog list cache invalidation failed", err)
	}
}
