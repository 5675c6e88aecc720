package seed

import (
	"context"
	"time"

	"toolsail-backend/internal/shared"
	"toolsail-backend/pkg/cache"
	"toolsail-backend/pkg/logger"
)

// cachePrefixes là mọi cache public có thể chứa dữ liệu fixture
var cachePrefixes = []string{
	shared.CacheKeyToolList,
	shared.CacheKeyBlogList,
	shared.CacheKeyCategory,
	shared.CacheKeyPromotion,
}

type Seeder struct {
	store Store
	cache cache.Cache
	now   func() time.Time
}

func NewSeeder(store Store, c cache.Cache) *Seeder {
	return &Seeder{store: store, cache: c, now: time.Now}
}

func (s *Seeder) Seed(ctx context.Context) (Result, error) {
	res, err := s.store.Insert(ctx, DefaultFixtures(s.now()))
	if err != nil {
		return Result{}, err
	}
	s.log("Seed data inserted", res)
	s.invalidate(ctx)
	return res, nil
}

func (s *Seeder) Clear(ctx context.Context) (Result, error) {
	res, err := s.store.Remove(ctx, DefaultFixtures(s.now()))
	if err != nil {
		return Result{}, err
	}
	s.log("Seed data cleared", res)
	s.invalidate(ctx)
	return res, nil
}

func (s *Seeder) log(msg string, res Result) {
	logger.Info(msg, map[string]interface{}{
		"categories":      res.Categories,
		"tools":           res.Tools,
		"blog_categories": res.BlogCategories,
		"posts":           res.Posts,
	})
}

func (s *Seeder) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	for _, prefix := range cachePrefixes {
		if err := s.cache.DeletePattern(ctx, prefix+"*"); err != nil {
			logger.Error("Seed cache invalidation failed", err)
		}
	}
}
