package seed

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"toolsail-backend/internal/shared/response"
)

type Handler struct {
	seeder *Seeder
}

func NewHandler(seeder *Seeder) *Handler {
	return &Handler{seeder: seeder}
}

// Seed POST /api/dev/seed
func (h *Handler) Seed(c *gin.Context) {
	res, err := h.seeder.Seed(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

// Clear DELETE /api/dev/seed
func (h *Handler) Clear(c *gin.Context) {
	res, err := h.seeder.Clear(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}
