package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"toolsail-backend/internal/domains/category/model"
	"toolsail-backend/internal/domains/category/repository"
	"toolsail-backend/internal/shared"
	"toolsail-backend/internal/shared/utils"
	"toolsail-backend/pkg/cache"
	"toolsail-backend/pkg/logger"
)

const (
	cacheKeyAll = shared.CacheKeyCategory + "all"
	cacheTTL    = 5 * time.Minute
)

type categoryService struct {
	repo  repository.Repository
	cache cache.Cache
	now   func() time.Time
}

func NewCategoryService(repo repository.Repository, c cache.Cache) ServiceInterface {
	return &categoryService{repo: repo, cache: c, now: time.Now}
}

// ========================================
// PUBLIC
// ========================================

func (s *categoryService) List(ctx context.Context) ([]*model.Category, error) {
	var cached []*model.Category
	if s.cache != nil {
		found, err := s.cache.Get(ctx, cacheKeyAll, &cached)
		if err != nil {
			logger.Error("Category cache read failed", err)
		} else if found {
			return cached, nil
		}
	}

	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyAll, categories, cacheTTL); err != nil {
			logger.Error("Category cache write failed", err)
		}
	}
	return categories, nil
}

func (s *categoryService) Tree(ctx context.Context) ([]*model.Category, error) {
	flat, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return model.BuildTree(flat), nil
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	c, err := s.repo.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return nil, err
	}
	children, err := s.repo.ListChildren(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Children = children
	return c, nil
}

// ========================================
// ADMIN
// ========================================

func (s *categoryService) Create(ctx context.Context, p shared.Principal, req model.CreateCategoryRequest) (*model.Category, error) {
	if err := p.RequireAdmin(); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	slug, err := s.resolveSlug(ctx, req.Slug, req.Name, "")
	if err != nil {
		return nil, err
	}

	parentID := normalizeParent(req.ParentID)
	if parentID != nil {
		if err := s.checkParent(ctx, "", *parentID); err != nil {
			return nil, err
		}
	}

	now := s.now()
	c := &model.Category{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Slug:         slug,
		Icon:         utils.NullableString(req.Icon),
		Description:  utils.NullableString(req.Description),
		ParentID:     parentID,
		DisplayOrder: req.DisplayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	logger.Info("Category created", map[string]interface{}{"id": c.ID, "slug": c.Slug, "by": p.UserID})
	return c, nil
}

func (s *categoryService) Update(ctx context.Context, p shared.Principal, id string, req model.UpdateCategoryRequest) (*model.Category, error) {
	if err := p.RequireAdmin(); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		if c.Slug, err = s.resolveSlug(ctx, *req.Slug, c.Name, c.ID); err != nil {
			return nil, err
		}
	}
	if req.Icon != nil {
		c.Icon = utils.NullableString(*req.Icon)
	}
	if req.Description != nil {
		c.Description = utils.NullableString(*req.Description)
	}
	if req.DisplayOrder != nil {
		c.DisplayOrder = *req.DisplayOrder
	}
	if req.ParentID != nil {
		parentID := normalizeParent(req.ParentID)
		if parentID != nil {
			if err := s.checkParent(ctx, c.ID, *parentID); err != nil {
				return nil, err
			}
		}
		c.ParentID = parentID
	}
	c.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return c, nil
}

// Delete bị từ chối khi category còn children hoặc tools
func (s *categoryService) Delete(ctx context.Context, p shared.Principal, id string) error {
	if err := p.RequireAdmin(); err != nil {
		return err
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	children, err := s.repo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return model.ErrHasChildren
	}

	tools, err := s.repo.CountTools(ctx, id)
	if err != nil {
		return err
	}
	if tools > 0 {
		return model.ErrHasTools
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	logger.Info("Category deleted", map[string]interface{}{"id": id, "by": p.UserID})
	return nil
}

// ========================================
// HELPERS
// ========================================

// resolveSlug: slug rỗng thì sinh từ name; luôn chuẩn hóa và kiểm tra unique
func (s *categoryService) resolveSlug(ctx context.Context, raw, name, excludeID string) (string, error) {
	source := raw
	if strings.TrimSpace(source) == "" {
		source = name
	}
	slug := utils.GenerateSlug(source)
	if slug == "" {
		return "", model.ErrInvalidSlug
	}

	exists, err := s.repo.SlugExists(ctx, slug, excludeID)
	if err != nil {
		return "", err
	}
	if exists {
		return "", model.ErrSlugExists
	}
	return slug, nil
}

// checkParent giữ cây tối đa 2 cấp
func (s *categoryService) checkParent(ctx context.Context, selfID, parentID string) error {
	if selfID != "" && parentID == selfID {
		return model.ErrSelfParent
	}

	parent, err := s.repo.GetByID(ctx, parentID)
	if err == model.ErrCategoryNotFound {
		return model.ErrParentNotFound
	}
	if err != nil {
		return err
	}
	if !parent.IsRoot() {
		return model.ErrParentNotRoot
	}

	if selfID != "" {
		kids, err := s.repo.CountChildren(ctx, selfID)
		if err != nil {
			return err
		}
		if kids > 0 {
			return model.ErrParentHasKids
		}
	}
	return nil
}

func normalizeParent(parentID *string) *string {
	if parentID == nil {
		return nil
	}
	return utils.NullableString(*parentID)
}

// invalidate xóa cache categories và tool listing (filter theo category slug)
func (s *categoryService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	for _, pattern := range []string{shared.CacheKeyCategory + "*", shared.CacheKeyToolList + "*"} {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			logger.Error("Cache invalidation failed", err)
		}
	}
}
