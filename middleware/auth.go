package middleware

import (
	"Marketplace/jwt"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"strings"
)

const (
	UserIDKey = "UserID"
	RoleKey   = "Role"
)

// 解析Bearer Token，合法時寫入UserID及Role，不合法則交由CheckLoginMiddleware拒絕
func AuthMiddleware(secret string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")

		if token == "" || token == authHeader {
			c.Next()
			return
		}

		userID, role, err := jwt.VerifyToken(secret, token)
		if err != nil {
			logger.Debug("無法驗證Token", zap.Error(err))
			c.Next()
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(RoleKey, role)
		c.Next()
	}
}
