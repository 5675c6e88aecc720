package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"toolsail-backend/internal/domains/promotion/model"
	"toolsail-backend/internal/domains/promotion/repository"
	toolmodel "toolsail-backend/internal/domains/tool/model"
	"toolsail-backend/internal/shared"
	"toolsail-backend/internal/shared/pagination"
	"toolsail-backend/pkg/cache"
	"toolsail-backend/pkg/logger"
)

const activeCacheTTL = 5 * time.Minute

type promotionService struct {
	repo  repository.PromotionRepository
	tools ToolLookup
	cache cache.Cache
	now   func() time.Time
}

func NewPromotionService(repo repository.PromotionRepository, tools ToolLookup, c cache.Cache) ServiceInterface {
	return &promotionService{repo: repo, tools: tools, cache: c, now: time.Now}
}

// ========================================
// PUBLIC
// ========================================

func (s *promotionService) ListActive(ctx context.Context, placement string) ([]*model.Promotion, error) {
	placement = strings.ToLower(strings.TrimSpace(placement))
	if placement != "" && !validPlacement(placement) {
		return nil, model.ErrInvalidPlacement
	}

	key := shared.CacheKeyPromotion + placement
	if s.cache != nil {
		var cached []*model.Promotion
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Error("Promotion cache read failed", err)
		} else if found {
			return cached, nil
		}
	}

	items, err := s.repo.ListLive(ctx, placement, s.now())
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, items, activeCacheTTL); err != nil {
			logger.Error("Promotion cache write failed", err)
		}
	}
	return items, nil
}

// ========================================
// ADMIN
// ========================================

func (s *promotionService) List(ctx context.Context, p shared.Principal, q model.ListQuery) ([]*model.Promotion, pagination.Meta, error) {
	if err := p.RequireAdmin(); err != nil {
		return nil, pagination.Meta{}, err
	}

	params := pagination.Parse(q.Page, q.Limit)
	filter := model.ListFilter{
		Placement: strings.ToLower(strings.TrimSpace(q.Placement)),
		Limit:     params.Limit,
		Offset:    params.Offset,
	}
	if active, err := strconv.ParseBool(q.Active); err == nil {
		filter.Active = &active
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return items, pagination.NewMeta(params.Page, params.Limit, total), nil
}

func (s *promotionService) Create(ctx context.Context, p shared.Principal, req model.CreatePromotionRequest) (*model.Promotion, error) {
	if err := p.RequireAdmin(); err != nil {
		return nil, err
	}
	req.Placement = strings.ToLower(strings.TrimSpace(req.Placement))
	req.Title = strings.TrimSpace(req.Title)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.tools.GetByID(ctx, req.ToolID); err != nil {
		if errors.Is(err, toolmodel.ErrToolNotFound) {
			return nil, model.ErrToolNotFound
		}
		return nil, err
	}

	now := s.now()
	promo := &model.Promotion{
		ID:        uuid.NewString(),
		ToolID:    req.ToolID,
		Title:     req.Title,
		Placement: model.Placement(req.Placement),
		Price:     req.Price.Round(2),
		StartsAt:  req.StartsAt.UTC(),
		EndsAt:    req.EndsAt.UTC(),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.IsActive != nil {
		promo.IsActive = *req.IsActive
	}

	if err := s.repo.Create(ctx, promo); err != nil {
		return nil, err
	}

	logger.Info("Promotion created", map[string]interface{}{
		"promotion_id": promo.ID,
		"tool_id":      promo.ToolID,
		"placement":    promo.Placement,
		"price":        promo.Price.StringFixed(2),
	})
	s.invalidate(ctx)
	return s.repo.GetByID(ctx, promo.ID)
}

func (s *promotionService) UpdateStatus(ctx context.Context, p shared.Principal, id string, req model.UpdateStatusRequest) (*model.Promotion, error) {
	if err := p.RequireAdmin(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	promo, err := s.repo.UpdateStatus(ctx, id, *req.IsActive, s.now())
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return promo, nil
}

func (s *promotionService) Delete(ctx context.Context, p shared.Principal, id string) error {
	if err := p.RequireAdmin(); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// ========================================
// WORKER
// ========================================

func (s *promotionService) DeactivateExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.DeactivateExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.invalidate(ctx)
	}
	return n, nil
}

func (s *promotionService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, shared.CacheKeyPromotion+"*"); err != nil {
		logger.Error("Promotion cache invalidation failed", err)
	}
}

func validPlacement(v string) bool {
	for _, p := range model.PlacementValues {
		if p == v {
			return true
		}
	}
	return false
}
