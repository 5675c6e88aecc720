package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	categorymodel "toolsail-backend/internal/domains/category/model"
	"toolsail-backend/internal/domains/tool/model"
	"toolsail-backend/internal/infrastructure/cache"
	"toolsail-backend/internal/infrastructure/storage"
	"toolsail-backend/internal/shared"
)

// ========================================
// FAKES
// ========================================

type fakeRepo struct {
	mu    sync.Mutex
	items map[string]*model.Tool
}

func newFakeRepo(tools ...*model.Tool) *fakeRepo {
	r := &fakeRepo{items: map[string]*model.Tool{}}
	for _, t := range tools {
		r.items[t.ID] = t
	}
	return r
}

func (r *fakeRepo) List(_ context.Context, f model.ListFilter) ([]*model.Tool, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*model.Tool
	for _, t := range r.items {
		if f.Published != nil && t.IsPublished != *f.Published {
			continue
		}
		if f.Featured != nil && t.IsFeatured != *f.Featured {
			continue
		}
		if f.CategoryIDs != nil && !contains(f.CategoryIDs, t.CategoryID) {
			continue
		}
		if f.Search != "" {
			needle := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(t.Name), needle) && !strings.Contains(strings.ToLower(t.Description), needle) {
				continue
			}
		}
		cp := *t
		matched = append(matched, &cp)
	}

	sort.Slice(matched, func(i, j int) bool {
		switch f.Sort {
		case model.SortName:
			return strings.ToLower(matched[i].Name) < strings.ToLower(matched[j].Name)
		case model.SortPopular:
			return matched[i].ViewCount > matched[j].ViewCount
		case model.SortOldest:
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		default:
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
	})

	total := int64(len(matched))
	if f.Limit > 0 {
		if f.Offset >= len(matched) {
			return []*model.Tool{}, total, nil
		}
		end := f.Offset + f.Limit
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[f.Offset:end]
	}
	return matched, total, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*model.Tool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.items[id]
	if !ok {
		return nil, model.ErrToolNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeRepo) Create(_ context.Context, t *model.Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[t.ID] = t
	return nil
}

func (r *fakeRepo) Update(_ context.Context, t *model.Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[t.ID]; !ok {
		return model.ErrToolNotFound
	}
	r.items[t.ID] = t
	return nil
}

func (r *fakeRepo) SetPublished(ctx context.Context, id string, published bool) (*model.Tool, error) {
	r.mu.Lock()
	t, ok := r.items[id]
	if ok {
		t.IsPublished = published
	}
	r.mu.Unlock()
	if !ok {
		return nil, model.ErrToolNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *fakeRepo) UpdateLogo(_ context.Context, id, logoURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.items[id]
	if !ok {
		return model.ErrToolNotFound
	}
	t.LogoURL = &logoURL
	return nil
}

func (r *fakeRepo) IncrementViewCount(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.items[id]; ok {
		t.ViewCount++
	}
	return nil
}

type fakeCategories struct {
	items []*categorymodel.Category
}

func (f *fakeCategories) GetByID(_ context.Context, id string) (*categorymodel.Category, error) {
	for _, c := range f.items {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, categorymodel.ErrCategoryNotFound
}

func (f *fakeCategories) GetBySlug(_ context.Context, slug string) (*categorymodel.Category, error) {
	for _, c := range f.items {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, categorymodel.ErrCategoryNotFound
}

func (f *fakeCategories) ListChildren(_ context.Context, parentID string) ([]*categorymodel.Category, error) {
	var out []*categorymodel.Category
	for _, c := range f.items {
		if c.ParentID != nil && *c.ParentID == parentID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeStorage struct {
	keys []string
	err  error
}

func (s *fakeStorage) Upload(_ context.Context, key string, _ []byte, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.keys = append(s.keys, key)
	return "http://cdn.test/" + key, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// ========================================
// FIXTURES
// ========================================

var (
	admin = shared.Principal{UserID: "admin-1", Role: shared.RoleAdmin}
	user  = shared.Principal{UserID: "user-1", Role: shared.RoleUser}
	base  = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
)

func strPtr(s string) *string { return &s }

func categories() *fakeCategories {
	return &fakeCategories{items: []*categorymodel.Category{
		{ID: "cat1", Name: "Writing", Slug: "writing"},
		{ID: "cat2", Name: "Copywriting", Slug: "copywriting", ParentID: strPtr("cat1")},
		{ID: "cat3", Name: "Image", Slug: "image"},
	}}
}

func tool(id, name, category string, published bool, age time.Duration) *model.Tool {
	return &model.Tool{
		ID:          id,
		Name:        name,
		URL:         "https://" + id + ".dev",
		Description: name + " helps you get things done faster.",
		CategoryID:  category,
		Pricing:     model.PricingFree,
		IsPublished: published,
		CreatedAt:   base.Add(-age),
		UpdatedAt:   base.Add(-age),
	}
}

func seededRepo() *fakeRepo {
	return newFakeRepo(
		tool("t1", "Alpha Writer", "cat1", true, 1*time.Hour),
		tool("t2", "Beta Copy", "cat2", true, 2*time.Hour),
		tool("t3", "Gamma Image", "cat3", true, 3*time.Hour),
		tool("t4", "Hidden Draft", "cat1", false, 0),
	)
}

func newService(repo *fakeRepo) ServiceInterface {
	return NewToolService(repo, categories(), cache.NewMemoryCache(), &fakeStorage{}, storage.NewImageProcessor())
}

// ========================================
// TESTS
// ========================================

func TestListPublic_OnlyPublishedNewestFirst(t *testing.T) {
	svc := newService(seededRepo())

	tools, meta, err := svc.ListPublic(context.Background(), model.ListQuery{})
	require.NoError(t, err)

	require.Len(t, tools, 3)
	assert.Equal(t, "t1", tools[0].ID)
	assert.Equal(t, "t3", tools[2].ID)
	assert.Equal(t, int64(3), meta.Total)
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, 20, meta.Limit)
	assert.Equal(t, 1, meta.TotalPages)
}

func TestListPublic_CategoryIncludesChildren(t *testing.T) {
	svc := newService(seededRepo())

	tools, meta, err := svc.ListPublic(context.Background(), model.ListQuery{Category: "writing"})
	require.NoError(t, err)

	ids := []string{}
	for _, tl := range tools {
		ids = append(ids, tl.ID)
	}
	assert.ElementsMatch(t, []string{"t1", "t2"}, ids)
	assert.Equal(t, int64(2), meta.Total)
}

func TestListPublic_UnknownCategoryIsEmptyPage(t *testing.T) {
	svc := newService(seededRepo())

	tools, meta, err := svc.ListPublic(context.Background(), model.ListQuery{Category: "nope"})
	require.NoError(t, err)
	assert.Empty(t, tools)
	assert.Equal(t, int64(0), meta.Total)
	assert.Equal(t, 0, meta.TotalPages)
}

func TestListPublic_SearchAndPaging(t *testing.T) {
	svc := newService(seededRepo())
	ctx := context.Background()

	tools, _, err := svc.ListPublic(ctx, model.ListQuery{Search: "IMAGE"})
	require.NoError(t, err)
	require.Len(t, tools, 1)
	assert.Equal(t, "t3", tools[0].ID)

	tools, meta, err := svc.ListPublic(ctx, model.ListQuery{Page: "2", Limit: "2"})
	require.NoError(t, err)
	require.Len(t, tools, 1)
	assert.Equal(t, 2, meta.TotalPages)
	assert.Equal(t, 2, meta.Page)
}

func TestGetPublic(t *testing.T) {
	repo := seededRepo()
	svc := newService(repo)
	ctx := context.Background()

	got, err := svc.GetPublic(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ViewCount)

	_, err = svc.GetPublic(ctx, "t4")
	assert.ErrorIs(t, err, model.ErrToolNotFound)

	_, err = svc.GetPublic(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrToolNotFound)
}

func TestCreate_ValidatesAndChecksCategory(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	ctx := context.Background()

	req := model.CreateToolRequest{
		Name:        "Delta",
		URL:         "https://delta.dev",
		Description: "Delta drafts release notes from commits.",
		CategoryID:  "cat1",
		Pricing:     "Paid",
	}

	_, err := svc.Create(ctx, user, req)
	assert.ErrorIs(t, err, shared.ErrForbidden)

	bad := req
	bad.Pricing = "Lifetime"
	_, err = svc.Create(ctx, admin, bad)
	appErr := shared.AsAppError(err)
	assert.Equal(t, shared.CodeValidation, appErr.Code)
	assert.Contains(t, appErr.Details, "pricing")

	missing := req
	missing.CategoryID = "ghost"
	_, err = svc.Create(ctx, admin, missing)
	assert.ErrorIs(t, err, model.ErrCategoryNotFound)

	created, err := svc.Create(ctx, admin, req)
	require.NoError(t, err)
	assert.True(t, created.IsPublished)
	assert.Equal(t, model.PricingPaid, created.Pricing)
	assert.Nil(t, created.LogoURL)
}

func TestUpdate_PartialFields(t *testing.T) {
	repo := seededRepo()
	svc := newService(repo)

	updated, err := svc.Update(context.Background(), admin, "t1", model.UpdateToolRequest{
		Name:       strPtr("Alpha Writer Pro"),
		CategoryID: strPtr("cat3"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alpha Writer Pro", updated.Name)
	assert.Equal(t, "cat3", updated.CategoryID)
	assert.Equal(t, "https://t1.dev", updated.URL)

	_, err = svc.Update(context.Background(), admin, "t1", model.UpdateToolRequest{CategoryID: strPtr("ghost")})
	assert.ErrorIs(t, err, model.ErrCategoryNotFound)
}

func TestCreateAndUpdate_TrimBeforeLengthCheck(t *testing.T) {
	repo := seededRepo()
	svc := newService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, admin, model.CreateToolRequest{
		Name:        "   E   ",
		URL:         "https://echo.dev",
		Description: "  " + strings.Repeat("d", 19) + "      ",
		CategoryID:  "cat1",
		Pricing:     "Free",
	})
	appErr := shared.AsAppError(err)
	assert.Equal(t, shared.CodeValidation, appErr.Code)
	assert.Contains(t, appErr.Details, "name")
	assert.Contains(t, appErr.Details, "description")

	_, err = svc.Update(ctx, admin, "t1", model.UpdateToolRequest{Description: strPtr(" " + strings.Repeat("d", 19) + " ")})
	assert.Contains(t, shared.AsAppError(err).Details, "description")

	updated, err := svc.Update(ctx, admin, "t1", model.UpdateToolRequest{Name: strPtr("  Alpha Two  ")})
	require.NoError(t, err)
	assert.Equal(t, "Alpha Two", updated.Name)
}

func TestSetPublished_InvalidatesListCache(t *testing.T) {
	repo := seededRepo()
	mem := cache.NewMemoryCache()
	svc := NewToolService(repo, categories(), mem, nil, storage.NewImageProcessor())
	ctx := context.Background()

	require.NoError(t, mem.Set(ctx, shared.CacheKeyToolList+"/api/tools", "stale", time.Minute))
	require.NoError(t, mem.Set(ctx, shared.CacheKeyCategory+"all", "keep", time.Minute))

	got, err := svc.SetPublished(ctx, admin, "t1", false)
	require.NoError(t, err)
	assert.False(t, got.IsPublished)

	assert.Equal(t, 1, mem.Len())
	var v string
	found, _ := mem.Get(ctx, shared.CacheKeyCategory+"all", &v)
	assert.True(t, found)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestUploadLogo(t *testing.T) {
	repo := seededRepo()
	store := &fakeStorage{}
	svc := NewToolService(repo, categories(), nil, store, storage.NewImageProcessor())
	ctx := context.Background()

	got, err := svc.UploadLogo(ctx, admin, "t1", pngBytes(t, 600, 300))
	require.NoError(t, err)
	require.Len(t, store.keys, 1)
	assert.True(t, strings.HasPrefix(store.keys[0], "logos/t1-"))
	require.NotNil(t, got.LogoURL)
	assert.Equal(t, "http://cdn.test/"+store.keys[0], *got.LogoURL)

	_, err = svc.UploadLogo(ctx, admin, "t1", []byte("not an image"))
	assert.Equal(t, shared.CodeValidation, shared.AsAppError(err).Code)

	_, err = svc.UploadLogo(ctx, admin, "missing", pngBytes(t, 10, 10))
	assert.ErrorIs(t, err, model.ErrToolNotFound)

	store.err = errors.New("minio down")
	_, err = svc.UploadLogo(ctx, admin, "t1", pngBytes(t, 10, 10))
	assert.Equal(t, shared.CodeServiceUnavailable, shared.AsAppError(err).Code)
}

func TestUploadLogo_StorageDisabled(t *testing.T) {
	svc := NewToolService(seededRepo(), categories(), nil, nil, storage.NewImageProcessor())

	_, err := svc.UploadLogo(context.Background(), admin, "t1", pngBytes(t, 10, 10))
	assert.ErrorIs(t, err, model.ErrStorageDisabled)
}

func TestExport_WritesWorkbook(t *testing.T) {
	svc := newService(seededRepo())

	data, err := svc.Export(context.Background(), admin, model.AdminListQuery{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, "t4", rows[1][0])
}
