package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"toolsail-backend/internal/domains/blog/model"
	"toolsail-backend/internal/domains/blog/service"
	"toolsail-backend/internal/shared"
	"toolsail-backend/internal/shared/middleware"
	"toolsail-backend/internal/shared/response"
	"toolsail-backend/pkg/cache"
	"toolsail-backend/pkg/logger"
)

type BlogHandler struct {
	service service.ServiceInterface
	cache   cache.Cache
	listTTL time.Duration
}

func NewBlogHandler(service service.ServiceInterface, c cache.Cache, listTTL time.Duration) *BlogHandler {
	return &BlogHandler{service: service, cache: c, listTTL: listTTL}
}

func postListQuery(c *gin.Context) model.PostListQuery {
	return model.PostListQuery{
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		Sort:     c.Query("sort"),
		Page:     c.Query("page"),
		Limit:    c.Query("limit"),
	}
}

// ListPosts GET /api/blog/posts (chỉ bài đã publish, cache theo URL)
func (h *BlogHandler) ListPosts(c *gin.Context) {
	ctx := c.Request.Context()
	key := shared.CacheKeyBlogList + c.Request.URL.RequestURI()

	if h.cache != nil {
		var cached response.ListPayload
		found, err := h.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Error("Blog list cache read failed", err)
		} else if found {
			c.JSON(http.StatusOK, response.Response{Success: true, Data: cached.Data, Meta: &cached.Meta})
			return
		}
	}

	posts, meta, err := h.service.ListPublished(ctx, postListQuery(c))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, key, response.ListPayload{Data: posts, Meta: meta}, h.listTTL); err != nil {
			logger.Error("Blog list cache write failed", err)
		}
	}
	response.SuccessWithMeta(c, posts, meta)
}

// GetPost GET /api/blog/posts/:slug
func (h *BlogHandler) GetPost(c *gin.Context) {
	post, err := h.service.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, post)
}

// ListCategories GET /api/blog/categories
func (h *BlogHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, categories)
}

// ========================================
// ADMIN
// ========================================

// AdminListPosts GET /api/admin/blog/posts
func (h *BlogHandler) AdminListPosts(c *gin.Context) {
	posts, meta, err := h.service.ListAll(c.Request.Context(), middleware.PrincipalFrom(c), postListQuery(c))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMeta(c, posts, meta)
}

// CreatePost POST /api/admin/blog/posts
func (h *BlogHandler) CreatePost(c *gin.Context) {
	var req model.CreatePostRequest
	if !response.BindJSON(c, &req) {
		return
	}

	post, err := h.service.CreatePost(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, post)
}

// UpdatePost PUT /api/admin/blog/posts/:id
func (h *BlogHandler) UpdatePost(c *gin.Context) {
	var req model.UpdatePostRequest
	if !response.BindJSON(c, &req) {
		return
	}

	post, err := h.service.UpdatePost(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, post)
}

// DeletePost DELETE /api/admin/blog/posts/:id
func (h *BlogHandler) DeletePost(c *gin.Context) {
	if err := h.service.DeletePost(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id")); err != nil {
		response.HandleError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Blog post deleted")
}

// CreateCategory POST /api/admin/blog/categories
func (h *BlogHandler) CreateCategory(c *gin.Context) {
	var req model.CreateCategoryRequest
	if !response.BindJSON(c, &req) {
		return
	}

	category, err := h.service.CreateCategory(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, category)
}

// UpdateCategory PUT /api/admin/blog/categories/:id
func (h *BlogHandler) UpdateCategory(c *gin.Context) {
	var req model.UpdateCategoryRequest
	if !response.BindJSON(c, &req) {
		return
	}

	category, err := h.service.UpdateCategory(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, category)
}

// DeleteCategory DELETE /api/admin/blog/categories/:id
func (h *BlogHandler) DeleteCategory(c *gin.Context) {
	if err := h.service.DeleteCategory(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id")); err != nil {
		response.HandleError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Blog category deleted")
}
