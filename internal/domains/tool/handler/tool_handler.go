package handler

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"toolsail-backend/internal/domains/tool/model"
	"toolsail-backend/internal/domains/tool/service"
	"toolsail-backend/internal/shared"
	"toolsail-backend/internal/shared/middleware"
	"toolsail-backend/internal/shared/response"
	"toolsail-backend/pkg/cache"
	"toolsail-backend/pkg/logger"
)

const maxLogoUpload = 2 << 20

type ToolHandler struct {
	service service.ServiceInterface
	cache   cache.Cache
	listTTL time.Duration
}

func NewToolHandler(service service.ServiceInterface, c cache.Cache, listTTL time.Duration) *ToolHandler {
	return &ToolHandler{service: service, cache: c, listTTL: listTTL}
}

func listQuery(c *gin.Context) model.ListQuery {
	return model.ListQuery{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
		Featured: c.Query("featured"),
		Page:     c.Query("page"),
		Limit:    c.Query("limit"),
	}
}

func adminListQuery(c *gin.Context) model.AdminListQuery {
	return model.AdminListQuery{ListQuery: listQuery(c), Published: c.Query("published")}
}

// List GET /api/tools
// Response được cache theo full request URL; cache lỗi thì bỏ qua và query DB.
func (h *ToolHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	key := shared.CacheKeyToolList + c.Request.URL.RequestURI()

	if h.cache != nil {
		var cached response.ListPayload
		found, err := h.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Error("Tool list cache read failed", err)
		} else if found {
			c.JSON(http.StatusOK, response.Response{Success: true, Data: cached.Data, Meta: &cached.Meta})
			return
		}
	}

	tools, meta, err := h.service.ListPublic(ctx, listQuery(c))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, key, response.ListPayload{Data: tools, Meta: meta}, h.listTTL); err != nil {
			logger.Error("Tool list cache write failed", err)
		}
	}
	response.SuccessWithMeta(c, tools, meta)
}

// Get GET /api/tools/:id
func (h *ToolHandler) Get(c *gin.Context) {
	tool, err := h.service.GetPublic(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tool)
}

// ========================================
// ADMIN
// ========================================

// AdminList GET /api/admin/tools
func (h *ToolHandler) AdminList(c *gin.Context) {
	tools, meta, err := h.service.ListAdmin(c.Request.Context(), middleware.PrincipalFrom(c), adminListQuery(c))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMeta(c, tools, meta)
}

// Create POST /api/admin/tools
func (h *ToolHandler) Create(c *gin.Context) {
	var req model.CreateToolRequest
	if !response.BindJSON(c, &req) {
		return
	}

	tool, err := h.service.Create(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, tool)
}

// Update PUT /api/admin/tools/:id
func (h *ToolHandler) Update(c *gin.Context) {
	var req model.UpdateToolRequest
	if !response.BindJSON(c, &req) {
		return
	}

	tool, err := h.service.Update(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tool)
}

// Publish POST /api/admin/tools/:id/publish
func (h *ToolHandler) Publish(c *gin.Context) {
	h.setPublished(c, true)
}

// Unpublish POST /api/admin/tools/:id/unpublish
func (h *ToolHandler) Unpublish(c *gin.Context) {
	h.setPublished(c, false)
}

func (h *ToolHandler) setPublished(c *gin.Context, published bool) {
	tool, err := h.service.SetPublished(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), published)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tool)
}

// UploadLogo POST /api/admin/tools/:id/logo (multipart, field "file")
func (h *ToolHandler) UploadLogo(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.HandleError(c, model.ErrLogoMissing)
		return
	}
	if file.Size > maxLogoUpload {
		response.HandleError(c, shared.NewFieldError("file", "file exceeds 2MB"))
		return
	}

	f, err := file.Open()
	if err != nil {
		response.HandleError(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxLogoUpload+1))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	tool, err := h.service.UploadLogo(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), data)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tool)
}

// Export GET /api/admin/tools/export
func (h *ToolHandler) Export(c *gin.Context) {
	data, err := h.service.Export(c.Request.Context(), middleware.PrincipalFrom(c), adminListQuery(c))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("tools-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
