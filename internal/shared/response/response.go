package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"toolsail-backend/internal/shared"
	"toolsail-backend/internal/shared/pagination"
	"toolsail-backend/pkg/logger"
)

type Response struct {
	Success bool             `json:"success"`
	Data    interface{}      `json:"data,omitempty"`
	Meta    *pagination.Meta `json:"meta,omitempty"`
	Message string           `json:"message,omitempty"`
}

type ErrorBody struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

// ListPayload là phần {data, meta} của list response, cũng là giá trị được cache
type ListPayload struct {
	Data interface{}     `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

// Success responses
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{Success: true, Data: data})
}

func SuccessWithMeta(c *gin.Context, data interface{}, meta pagination.Meta) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data, Meta: &meta})
}

// Message trả {success:true, message}
func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{Success: true, Message: message})
}

// Fields trả các field phẳng cạnh "success", vd {success, submissionId, message}
func Fields(c *gin.Context, statusCode int, fields gin.H) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// Error responses

// HandleError map error sang HTTP response.
// Lỗi không phân loại được log đầy đủ và trả message chung chung.
func HandleError(c *gin.Context, err error) {
	appErr := shared.AsAppError(err)

	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.Error("Request failed: "+c.Request.Method+" "+c.FullPath(), err)
	}

	c.JSON(appErr.HTTPStatus, ErrorBody{
		Success: false,
		Error:   appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	})
}

// Abort dùng trong middleware: ghi error response và dừng chain
func Abort(c *gin.Context, err error) {
	HandleError(c, err)
	c.Abort()
}

// BindJSON parse body; body lỗi -> 400 VALIDATION_ERROR và trả false
func BindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		HandleError(c, shared.NewValidationError(map[string]string{"body": "invalid JSON body"}))
		return false
	}
	return true
}
