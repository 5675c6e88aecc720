package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	categorymodel "toolsail-backend/internal/domains/category/model"
	"toolsail-backend/internal/domains/tool/model"
	"toolsail-backend/internal/domains/tool/repository"
	"toolsail-backend/internal/infrastructure/storage"
	"toolsail-backend/internal/shared"
	"toolsail-backend/internal/shared/pagination"
	"toolsail-backend/internal/shared/utils"
	"toolsail-backend/pkg/cache"
	"toolsail-backend/pkg/logger"
)

type toolService struct {
	repo       repository.Repository
	categories CategoryLookup
	cache      cache.Cache
	storage    ObjectStorage
	images     LogoProcessor
	now        func() time.Time
}

// NewToolService: storage có thể nil (MinIO chưa cấu hình), khi đó UploadLogo trả 503
func NewToolService(
	repo repository.Repository,
	categories CategoryLookup,
	c cache.Cache,
	objectStorage ObjectStorage,
	images LogoProcessor,
) ServiceInterface {
	return &toolService{
		repo:       repo,
		categories: categories,
		cache:      c,
		storage:    objectStorage,
		images:     images,
		now:        time.Now,
	}
}

// ========================================
// PUBLIC
// ========================================

// ListPublic chỉ trả tools đã publish.
// Category slug không tồn tại -> trang rỗng, total = 0 (không phải 404).
func (s *toolService) ListPublic(ctx context.Context, q model.ListQuery) ([]*model.Tool, pagination.Meta, error) {
	published := true
	return s.list(ctx, q, &published)
}

func (s *toolService) GetPublic(ctx context.Context, id string) (*model.Tool, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.IsPublished {
		return nil, model.ErrToolNotFound
	}

	if err := s.repo.IncrementViewCount(ctx, id); err != nil {
		logger.Error("Increment tool view count failed", err)
	} else {
		t.ViewCount++
	}
	return t, nil
}

// ========================================
// ADMIN
// ========================================

func (s *toolService) ListAdmin(ctx context.Context, p shared.Principal, q model.AdminListQuery) ([]*model.Tool, pagination.Meta, error) {
	if err := p.RequireAdmin(); err != nil {
		return nil, pagination.Meta{}, err
	}
	return s.list(ctx, q.ListQuery, parseBool(q.Published))
}

func (s *toolService) Create(ctx context.Context, p shared.Principal, req model.CreateToolRequest) (*model.Tool, error) {
	if err := p.RequireAdmin(); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	published := true
	if req.IsPublished != nil {
		published = *req.IsPublished
	}

	now := s.now()
	t := &model.Tool{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		URL:         strings.TrimSpace(req.URL),
		Description: strings.TrimSpace(req.Description),
		LogoURL:     utils.NullableString(req.LogoURL),
		CategoryID:  req.CategoryID,
		Pricing:     model.Pricing(req.Pricing),
		IsFeatured:  req.IsFeatured,
		IsPublished: published,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	logger.Info("Tool created", map[string]interface{}{"id": t.ID, "by": p.UserID})
	return t, nil
}

func (s *toolService) Update(ctx context.Context, p shared.Principal, id string, req model.UpdateToolRequest) (*model.Tool, error) {
	if err := p.RequireAdmin(); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		t.Name = strings.TrimSpace(*req.Name)
	}
	if req.URL != nil {
		t.URL = strings.TrimSpace(*req.URL)
	}
	if req.Description != nil {
		t.Description = strings.TrimSpace(*req.Description)
	}
	if req.LogoURL != nil {
		t.LogoURL = utils.NullableString(*req.LogoURL)
	}
	if req.CategoryID != nil && *req.CategoryID != t.CategoryID {
		if err := s.checkCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		t.CategoryID = *req.CategoryID
	}
	if req.Pricing != nil {
		t.Pricing = model.Pricing(*req.Pricing)
	}
	if req.IsFeatured != nil {
		t.IsFeatured = *req.IsFeatured
	}
	if req.IsPublished != nil {
		t.IsPublished = *req.IsPublished
	}
	t.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return t, nil
}

// SetPublished là soft publish/unpublish, tool không bao giờ bị xóa cứng
func (s *toolService) SetPublished(ctx context.Context, p shared.Principal, id string, published bool) (*model.Tool, error) {
	if err := p.RequireAdmin(); err != nil {
		return nil, err
	}

	t, err := s.repo.SetPublished(ctx, id, published)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	logger.Info("Tool publish state changed", map[string]interface{}{"id": id, "published": published, "by": p.UserID})
	return t, nil
}

func (s *toolService) UploadLogo(ctx context.Context, p shared.Principal, id string, data []byte) (*model.Tool, error) {
	if err := p.RequireAdmin(); err != nil {
		return nil, err
	}
	if s.storage == nil {
		return nil, model.ErrStorageDisabled
	}
	if len(data) == 0 {
		return nil, model.ErrLogoMissing
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if err := s.images.ValidateImage(data); err != nil {
		if errors.Is(err, storage.ErrImageTooLarge) || errors.Is(err, storage.ErrUnsupportedFormat) {
			return nil, shared.NewFieldError("file", err.Error())
		}
		return nil, err
	}

	processed, err := s.images.ProcessLogo(data)
	if err != nil {
		return nil, shared.NewFieldError("file", err.Error())
	}

	key := fmt.Sprintf("logos/%s-%d.png", id, s.now().Unix())
	url, err := s.storage.Upload(ctx, key, processed, "image/png")
	if err != nil {
		return nil, shared.NewServiceUnavailable("Logo upload failed", err)
	}

	if err := s.repo.UpdateLogo(ctx, id, url); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return s.repo.GetByID(ctx, id)
}

// ========================================
// HELPERS
// ========================================

func (s *toolService) list(ctx context.Context, q model.ListQuery, published *bool) ([]*model.Tool, pagination.Meta, error) {
	params := pagination.Parse(q.Page, q.Limit)

	filter := model.ListFilter{
		Search:    q.Search,
		Featured:  parseBool(q.Featured),
		Published: published,
		Sort:      q.Sort,
		Limit:     params.Limit,
		Offset:    params.Offset,
	}

	if slug := strings.TrimSpace(q.Category); slug != "" {
		ids, err := s.categoryIDs(ctx, slug)
		if err != nil {
			return nil, pagination.Meta{}, err
		}
		filter.CategoryIDs = ids
	}

	tools, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return tools, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// categoryIDs trả id của category theo slug cùng các con trực tiếp.
// Slug không tồn tại -> slice rỗng (không khớp tool nào).
func (s *toolService) categoryIDs(ctx context.Context, slug string) ([]string, error) {
	c, err := s.categories.GetBySlug(ctx, strings.ToLower(slug))
	if errors.Is(err, categorymodel.ErrCategoryNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	ids := []string{c.ID}
	children, err := s.categories.ListChildren(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		ids = append(ids, child.ID)
	}
	return ids, nil
}

func (s *toolService) checkCategory(ctx context.Context, id string) error {
	_, err := s.categories.GetByID(ctx, id)
	if errors.Is(err, categorymodel.ErrCategoryNotFound) {
		return model.ErrCategoryNotFound
	}
	return err
}

func (s *toolService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, shared.CacheKeyToolList+"*"); err != nil {
		logger.Error("Tool list cache invalidation failed", err)
	}
}

// parseBool: "" hoặc giá trị lạ -> nil (không lọc)
func parseBool(raw string) *bool {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &v
}
