package handlers

import (
	"context"
	"github.com/gin-gonic/gin"
	"net/http"
	"time"
)

type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// 檢查資料庫及Redis連線
func HealthHandler(checks ...HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		failed := gin.H{}
		for _, check := range checks {
			if err := check.Check(ctx); err != nil {
				failed[check.Name] = err.Error()
			}
		}

		if len(failed) > 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"checks": failed,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
