package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"toolsail-backend/internal/domains/category/model"
	"toolsail-backend/internal/domains/category/service"
	"toolsail-backend/internal/shared/middleware"
	"toolsail-backend/internal/shared/response"
)

type CategoryHandler struct {
	service service.ServiceInterface
}

func NewCategoryHandler(service service.ServiceInterface) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// List GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.service.List(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, categories)
}

// Tree GET /api/categories/tree
func (h *CategoryHandler) Tree(c *gin.Context) {
	tree, err := h.service.Tree(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tree)
}

// GetBySlug GET /api/categories/:slug
func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	category, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, category)
}

// Create POST /api/admin/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req model.CreateCategoryRequest
	if !response.BindJSON(c, &req) {
		return
	}

	category, err := h.service.Create(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, category)
}

// Update PUT /api/admin/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	var req model.UpdateCategoryRequest
	if !response.BindJSON(c, &req) {
		return
	}

	category, err := h.service.Update(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, category)
}

// Delete DELETE /api/admin/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id")); err != nil {
		response.HandleError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Category deleted")
}
