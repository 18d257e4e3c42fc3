package middleware

import (
	"Marketplace/models"
	"github.com/gin-gonic/gin"
	"net/http"
)

// 檢查是否有admin權限，沒有則中止請求
func CheckAdminPermissionMiddleware() gin.HandlerFunc {
	return requireRole(models.RoleAdmin)
}

// seller路由admin也可使用
func CheckSellerPermissionMiddleware() gin.HandlerFunc {
	return requireRole(models.RoleSeller, models.RoleAdmin)
}

func requireRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(RoleKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "unauthorized",
			})
			return
		}

		for _, r := range allowed {
			if role == r {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"message": "forbidden",
		})
	}
}
