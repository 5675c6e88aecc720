package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"toolsail-backend/internal/domains/submission/model"
	"toolsail-backend/internal/domains/submission/service"
	verificationmodel "toolsail-backend/internal/domains/verification/model"
	"toolsail-backend/internal/shared/middleware"
	"toolsail-backend/internal/shared/response"
)

const (
	submittedMessage = "Tool submitted successfully. We will review it within 48 hours."
	codeSentMessage  = "Verification code sent to your email"
)

// CodeIssuer phát mã xác minh cho PUT /api/submissions
type CodeIssuer interface {
	Issue(ctx context.Context, req verificationmodel.IssueRequest) error
}

type SubmissionHandler struct {
	service service.ServiceInterface
	codes   CodeIssuer
}

func NewSubmissionHandler(service service.ServiceInterface, codes CodeIssuer) *SubmissionHandler {
	return &SubmissionHandler{service: service, codes: codes}
}

// ========================================
// PUBLIC
// ========================================

// Submit POST /api/submissions
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req model.SubmitRequest
	if !response.BindJSON(c, &req) {
		return
	}

	sub, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Fields(c, http.StatusCreated, gin.H{
		"submissionId": sub.ID,
		"message":      submittedMessage,
	})
}

// SendCode PUT /api/submissions
// Luôn 200 khi email hợp lệ, kể cả khi gửi email thất bại.
func (h *SubmissionHandler) SendCode(c *gin.Context) {
	var req verificationmodel.IssueRequest
	if !response.BindJSON(c, &req) {
		return
	}

	if err := h.codes.Issue(c.Request.Context(), req); err != nil {
		response.HandleError(c, err)
		return
	}
	response.Message(c, http.StatusOK, codeSentMessage)
}

// ========================================
// USER
// ========================================

// SubmitAsUser POST /api/user/submissions
func (h *SubmissionHandler) SubmitAsUser(c *gin.Context) {
	var req model.UserSubmitRequest
	if !response.BindJSON(c, &req) {
		return
	}

	sub, err := h.service.SubmitAsUser(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Fields(c, http.StatusCreated, gin.H{
		"submissionId": sub.ID,
		"message":      submittedMessage,
	})
}

// ListMine GET /api/user/submissions
func (h *SubmissionHandler) ListMine(c *gin.Context) {
	items, meta, err := h.service.ListMine(c.Request.Context(), middleware.PrincipalFrom(c), c.Query("page"), c.Query("limit"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMeta(c, items, meta)
}

// ========================================
// ADMIN
// ========================================

// List GET /api/admin/submissions
func (h *SubmissionHandler) List(c *gin.Context) {
	q := model.ListQuery{Status: c.Query("status"), Page: c.Query("page"), Limit: c.Query("limit")}

	items, meta, err := h.service.List(c.Request.Context(), middleware.PrincipalFrom(c), q)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMeta(c, items, meta)
}

// Get GET /api/admin/submissions/:id
func (h *SubmissionHandler) Get(c *gin.Context) {
	sub, err := h.service.Get(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sub)
}

// Approve POST /api/admin/submissions/:id/approve
func (h *SubmissionHandler) Approve(c *gin.Context) {
	sub, err := h.service.Approve(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sub)
}

// Reject POST /api/admin/submissions/:id/reject
func (h *SubmissionHandler) Reject(c *gin.Context) {
	var req model.RejectRequest
	if !response.BindJSON(c, &req) {
		return
	}

	sub, err := h.service.Reject(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sub)
}

// RequestChanges POST /api/admin/submissions/:id/request-changes
func (h *SubmissionHandler) RequestChanges(c *gin.Context) {
	var req model.RequestChangesRequest
	if !response.BindJSON(c, &req) {
		return
	}

	sub, err := h.service.RequestChanges(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sub)
}
