package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"toolsail-backend/internal/shared"
	"toolsail-backend/internal/shared/response"
)

// Recovery là top-level handler cho panic: log chi tiết, trả INTERNAL_ERROR chung chung
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Str("request_id", c.GetString("request_id")).
					Interface("error", rec).
					Msg("Panic recovered")

				response.Abort(c, shared.NewInternal(fmt.Errorf("panic: %v", rec)))
			}
		}()

		c.Next()
	}
}

// DevOnly chặn route khi chạy production
func DevOnly(isProduction bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isProduction {
			response.Abort(c, shared.NewNotFound("Not found", nil))
			return
		}
		c.Next()
	}
}
