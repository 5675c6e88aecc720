package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"toolsail-backend/internal/shared"
	"toolsail-backend/internal/shared/response"
	"toolsail-backend/pkg/jwt"
)

const principalKey = "principal"

// AuthMiddleware bắt buộc bearer token hợp lệ, gắn Principal vào context
func AuthMiddleware(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := principalFromHeader(c, jwtManager)
		if err != nil {
			response.Abort(c, err)
			return
		}
		setPrincipal(c, principal)
		c.Next()
	}
}

// AdminMiddleware chặn sớm non-admin. Services vẫn tự kiểm tra Principal.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := PrincipalFrom(c).RequireAdmin(); err != nil {
			response.Abort(c, err)
			return
		}
		c.Next()
	}
}

// PrincipalFrom đọc Principal đã gắn; guest trả về zero value
func PrincipalFrom(c *gin.Context) shared.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(shared.Principal); ok {
			return p
		}
	}
	return shared.Principal{}
}

func setPrincipal(c *gin.Context, p shared.Principal) {
	c.Set(principalKey, p)
}

func principalFromHeader(c *gin.Context, jwtManager *jwt.Manager) (shared.Principal, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return shared.Principal{}, shared.ErrUnauthorized
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return shared.Principal{}, shared.ErrUnauthorized
	}

	claims, err := jwtManager.ValidateAccessToken(parts[1])
	if err != nil || claims.UserID == "" {
		return shared.Principal{}, shared.ErrUnauthorized
	}

	return shared.Principal{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   shared.Role(claims.Role),
	}, nil
}
