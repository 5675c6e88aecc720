package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"toolsail-backend/internal/domains/promotion/model"
	"toolsail-backend/internal/domains/promotion/service"
	"toolsail-backend/internal/shared/middleware"
	"toolsail-backend/internal/shared/response"
)

type AdminHandler struct {
	service service.ServiceInterface
}

func NewAdminHandler(service service.ServiceInterface) *AdminHandler {
	return &AdminHandler{service: service}
}

// List GET /api/admin/promotions
func (h *AdminHandler) List(c *gin.Context) {
	q := model.ListQuery{
		Placement: c.Query("placement"),
		Active:    c.Query("active"),
		Page:      c.Query("page"),
		Limit:     c.Query("limit"),
	}

	items, meta, err := h.service.List(c.Request.Context(), middleware.PrincipalFrom(c), q)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMeta(c, items, meta)
}

// Create POST /api/admin/promotions
func (h *AdminHandler) Create(c *gin.Context) {
	var req model.CreatePromotionRequest
	if !response.BindJSON(c, &req) {
		return
	}

	promo, err := h.service.Create(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, promo)
}

// UpdateStatus PATCH /api/admin/promotions/:id/status
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	var req model.UpdateStatusRequest
	if !response.BindJSON(c, &req) {
		return
	}

	promo, err := h.service.UpdateStatus(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, promo)
}

// Delete DELETE /api/admin/promotions/:id
func (h *AdminHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id")); err != nil {
		response.HandleError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Promotion deleted")
}
