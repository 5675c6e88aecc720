package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"toolsail-backend/internal/domains/promotion/service"
	"toolsail-backend/internal/shared/response"
)

type PublicHandler struct {
	service service.ServiceInterface
}

func NewPublicHandler(service service.ServiceInterface) *PublicHandler {
	return &PublicHandler{service: service}
}

// ListActive GET /api/promotions/active?placement=
func (h *PublicHandler) ListActive(c *gin.Context) {
	items, err := h.service.ListActive(c.Request.Context(), c.Query("placement"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}
