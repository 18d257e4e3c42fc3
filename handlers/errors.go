package handlers

import (
	"Marketplace/middleware"
	"Marketplace/services"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"net/http"
)

// 將service錯誤轉換為HTTP回應
func (h *OrderHandler) writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var validationErr *services.ValidationError
	var transactionErr *services.TransactionError
	var aggregationErr *services.AggregationError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"message": validationErr.Message,
		})
	case errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"message": "Order not found",
		})
	case errors.Is(err, services.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{
			"message": "Insufficient stock",
			"error":   err.Error(),
		})
	case errors.As(err, &transactionErr):
		h.logFailure(c, "create order failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to create order",
			"error":   err.Error(),
		})
	case errors.As(err, &aggregationErr):
		h.logFailure(c, "fetch stats failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to fetch stats",
		})
	default:
		h.logFailure(c, "request failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
		})
	}
}

func (h *OrderHandler) logFailure(c *gin.Context, msg string, err error) {
	h.logger.Error(msg,
		zap.String("request_id", c.GetString(middleware.RequestIDKey)),
		zap.String("path", c.FullPath()),
		zap.Error(err))
}
