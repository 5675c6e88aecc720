package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolsail-backend/internal/domains/blog/model"
	"toolsail-backend/internal/infrastructure/cache"
	"toolsail-backend/internal/shared"
)

type fakeRepo struct {
	mu         sync.Mutex
	posts      map[string]*model.Post
	categories map[string]*model.BlogCategory
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{posts: map[string]*model.Post{}, categories: map[string]*model.BlogCategory{}}
}

func (r *fakeRepo) ListPosts(_ context.Context, f model.PostFilter) ([]*model.Post, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Post
	for _, p := range r.posts {
		if f.Published != nil && p.IsPublished != *f.Published {
			continue
		}
		if f.CategorySlug != "" {
			c, ok := r.categories[stringValue(p.CategoryID)]
			if !ok || c.Slug != f.CategorySlug {
				continue
			}
		}
		if f.Tag != "" && !hasTag(p.Tags, f.Tag) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (r *fakeRepo) GetPostByID(_ context.Context, id string) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, model.ErrPostNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) GetPostBySlug(_ context.Context, slug string) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, model.ErrPostNotFound
}

func (r *fakeRepo) PostSlugExists(_ context.Context, slug, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.Slug == slug && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) CreatePost(_ context.Context, p *model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts[p.ID] = p
	return nil
}

func (r *fakeRepo) UpdatePost(_ context.Context, p *model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts[p.ID] = p
	return nil
}

func (r *fakeRepo) DeletePost(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return model.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *fakeRepo) IncrementPostViews(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.posts[id]; ok {
		p.ViewCount++
	}
	return nil
}

func (r *fakeRepo) ListCategories(context.Context) ([]*model.BlogCategory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.BlogCategory, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeRepo) GetCategoryByID(_ context.Context, id string) (*model.BlogCategory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, model.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeRepo) CategorySlugExists(_ context.Context, slug, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.Slug == slug && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) CountPostsInCategory(_ context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.posts {
		if stringValue(p.CategoryID) == id {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) CreateCategory(_ context.Context, c *model.BlogCategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[c.ID] = c
	return nil
}

func (r *fakeRepo) UpdateCategory(_ context.Context, c *model.BlogCategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[c.ID] = c
	return nil
}

func (r *fakeRepo) DeleteCategory(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.categories, id)
	return nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

var admin = shared.Principal{UserID: "admin-1", Role: shared.RoleAdmin}

func TestCreatePost_SlugTagsAndPublishedAt(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBlogService(repo, nil)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, admin, model.CreatePostRequest{
		Title:       "Top 10 AI Writing Tools",
		Content:     "Body",
		Tags:        []string{"Writing", " writing ", "AI"},
		IsPublished: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "top-10-ai-writing-tools", post.Slug)
	assert.Equal(t, []string{"writing", "ai"}, []string(post.Tags))
	require.NotNil(t, post.PublishedAt)

	_, err = svc.CreatePost(ctx, admin, model.CreatePostRequest{Title: "Top 10 AI writing tools!", Content: "Body"})
	assert.ErrorIs(t, err, model.ErrSlugExists)

	_, err = svc.CreatePost(ctx, admin, model.CreatePostRequest{Title: "Orphan", Content: "Body", CategoryID: "ghost"})
	assert.ErrorIs(t, err, model.ErrCategoryMissing)
}

func TestListPublished_FiltersAndUnknownCategory(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBlogService(repo, nil)
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, admin, model.CreateCategoryRequest{Name: "Guides"})
	require.NoError(t, err)

	_, err = svc.CreatePost(ctx, admin, model.CreatePostRequest{Title: "Guide one", Content: "x", CategoryID: cat.ID, Tags: []string{"ai"}, IsPublished: true})
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, admin, model.CreatePostRequest{Title: "Draft two", Content: "x", CategoryID: cat.ID, Tags: []string{"ai"}})
	require.NoError(t, err)

	posts, meta, err := svc.ListPublished(ctx, model.PostListQuery{Category: "guides"})
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, int64(1), meta.Total)

	posts, _, err = svc.ListPublished(ctx, model.PostListQuery{Tag: "AI"})
	require.NoError(t, err)
	assert.Len(t, posts, 1)

	posts, meta, err = svc.ListPublished(ctx, model.PostListQuery{Category: "nope"})
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Equal(t, int64(0), meta.Total)

	all, _, err := svc.ListAll(ctx, admin, model.PostListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetPublishedBySlug(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBlogService(repo, nil)
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, admin, model.CreatePostRequest{Title: "Live post", Content: "x", IsPublished: true})
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, admin, model.CreatePostRequest{Title: "Hidden post", Content: "x"})
	require.NoError(t, err)

	got, err := svc.GetPublishedBySlug(ctx, "live-post")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ViewCount)

	_, err = svc.GetPublishedBySlug(ctx, "hidden-post")
	assert.ErrorIs(t, err, model.ErrPostNotFound)
}

func TestUpdatePost_KeepsFirstPublishedAt(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBlogService(repo, nil).(*blogService)
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	post, err := svc.CreatePost(ctx, admin, model.CreatePostRequest{Title: "Evergreen", Content: "x", IsPublished: true})
	require.NoError(t, err)

	now = now.Add(24 * time.Hour)
	off, on := false, true
	_, err = svc.UpdatePost(ctx, admin, post.ID, model.UpdatePostRequest{IsPublished: &off})
	require.NoError(t, err)
	updated, err := svc.UpdatePost(ctx, admin, post.ID, model.UpdatePostRequest{IsPublished: &on})
	require.NoError(t, err)

	assert.True(t, updated.IsPublished)
	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), *updated.PublishedAt)
}

func TestCreate_TitlesTrimmedBeforeLengthCheck(t *testing.T) {
	svc := NewBlogService(newFakeRepo(), nil)
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, admin, model.CreatePostRequest{Title: "  AI      ", Content: "Body"})
	assert.Contains(t, shared.AsAppError(err).Details, "title")

	_, err = svc.CreateCategory(ctx, admin, model.CreateCategoryRequest{Name: "    N    "})
	assert.Contains(t, shared.AsAppError(err).Details, "name")

	post, err := svc.CreatePost(ctx, admin, model.CreatePostRequest{Title: "  Launch week  ", Content: "Body"})
	require.NoError(t, err)
	assert.Equal(t, "Launch week", post.Title)
}

func TestDeleteCategory_RefusedWhenReferenced(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBlogService(repo, nil)
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, admin, model.CreateCategoryRequest{Name: "News"})
	require.NoError(t, err)
	post, err := svc.CreatePost(ctx, admin, model.CreatePostRequest{Title: "Launch week", Content: "x", CategoryID: cat.ID})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteCategory(ctx, admin, cat.ID), model.ErrCategoryInUse)

	require.NoError(t, svc.DeletePost(ctx, admin, post.ID))
	assert.NoError(t, svc.DeleteCategory(ctx, admin, cat.ID))
	assert.ErrorIs(t, svc.DeleteCategory(ctx, admin, cat.ID), model.ErrCategoryNotFound)
}

func TestMutationsInvalidateBlogListCache(t *testing.T) {
	mem := cache.NewMemoryCache()
	svc := NewBlogService(newFakeRepo(), mem)
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, shared.CacheKeyBlogList+"/api/blog/posts", "stale", time.Minute))

	_, err := svc.CreatePost(ctx, admin, model.CreatePostRequest{Title: "Fresh", Content: "x"})
	require.NoError(t, err)
	assert.Equal(t, 0, mem.Len())
}

func TestAdminOnly(t *testing.T) {
	svc := NewBlogService(newFakeRepo(), nil)
	guest := shared.Principal{}

	_, err := svc.CreatePost(context.Background(), guest, model.CreatePostRequest{Title: "x", Content: "x"})
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
	assert.ErrorIs(t, svc.DeleteCategory(context.Background(), shared.Principal{UserID: "u"}, "c"), shared.ErrForbidden)
}
