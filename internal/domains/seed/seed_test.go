package seed

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	toolmodel "toolsail-backend/internal/domains/tool/model"
	"toolsail-backend/internal/infrastructure/cache"
	"toolsail-backend/internal/shared"
)

type fakeStore struct {
	inserted []Fixtures
	err      error
}

func (s *fakeStore) Insert(_ context.Context, f Fixtures) (Result, error) {
	if s.err != nil {
		return Result{}, s.err
	}
	s.inserted = append(s.inserted, f)
	return Result{
		Categories:     int64(len(f.Categories)),
		Tools:          int64(len(f.Tools)),
		BlogCategories: int64(len(f.BlogCategories)),
		Posts:          int64(len(f.Posts)),
	}, nil
}

func (s *fakeStore) Remove(_ context.Context, f Fixtures) (Result, error) {
	if s.err != nil {
		return Result{}, s.err
	}
	return Result{Tools: int64(len(f.Tools))}, nil
}

func TestDefaultFixtures_Consistent(t *testing.T) {
	f := DefaultFixtures(time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC))

	categories := map[string]bool{}
	slugs := map[string]bool{}
	for _, c := range f.Categories {
		assert.False(t, slugs[c.Slug], "duplicate slug %s", c.Slug)
		slugs[c.Slug] = true
		categories[c.ID] = c.IsRoot()
	}
	assert.Contains(t, categories, "cat1")

	for _, c := range f.Categories {
		if c.ParentID != nil {
			isRoot, ok := categories[*c.ParentID]
			assert.True(t, ok && isRoot, "category %s must hang under a root", c.ID)
		}
	}

	for _, tool := range f.Tools {
		assert.Contains(t, categories, tool.CategoryID)
		assert.Contains(t, toolmodel.PricingValues, string(tool.Pricing))
		assert.True(t, tool.IsPublished)
	}

	blogCategories := map[string]bool{}
	for _, c := range f.BlogCategories {
		blogCategories[c.ID] = true
	}
	for _, p := range f.Posts {
		if p.CategoryID != nil {
			assert.Contains(t, blogCategories, *p.CategoryID)
		}
		assert.NotNil(t, p.Tags)
		assert.Equal(t, p.IsPublished, p.PublishedAt != nil)
	}
}

func TestSeeder_InvalidatesPublicCaches(t *testing.T) {
	mem := cache.NewMemoryCache()
	ctx := context.Background()
	for _, key := range []string{
		shared.CacheKeyToolList + "/api/tools",
		shared.CacheKeyBlogList + "/api/blog/posts",
		shared.CacheKeyCategory + "tree",
		shared.CacheKeyPromotion + "homepage",
	} {
		require.NoError(t, mem.Set(ctx, key, "stale", time.Minute))
	}

	store := &fakeStore{}
	res, err := NewSeeder(store, mem).Seed(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 6, res.Tools)
	assert.Len(t, store.inserted, 1)
	assert.Equal(t, 0, mem.Len())
}

func TestHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := &fakeStore{}
	r := gin.New()
	h := NewHandler(NewSeeder(store, nil))
	r.POST("/api/dev/seed", h.Seed)
	r.DELETE("/api/dev/seed", h.Clear)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/dev/seed", nil))
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Success bool   `json:"success"`
		Data    Result `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.EqualValues(t, 5, body.Data.Categories)

	store.err = ErrFixturesInUse
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/dev/seed", nil))
	assert.Equal(t, http.StatusConflict, w.Code)

	store.err = errors.New("db down")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/dev/seed", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

