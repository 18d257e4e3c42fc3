package handlers

import (
	"Marketplace/middleware"
	"Marketplace/models"
	"Marketplace/services"
	"context"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"net/http"
	"strconv"
)

type OrderUseCase interface {
	CreateOrder(ctx context.Context, in services.CreateOrderInput) (uint, error)
	MyOrders(ctx context.Context, userID uint) ([]models.OrderWithItems, error)
	GetOrder(ctx context.Context, userID, orderID uint) (*models.OrderWithItems, error)
	SellerOrders(ctx context.Context, sellerID uint) ([]models.SellerOrder, error)
}

type StatsUseCase interface {
	SellerStats(ctx context.Context, sellerID uint) (*models.SellerStats, error)
	AdminStats(ctx context.Context) (*models.AdminStats, error)
}

type OrderHandler struct {
	orders OrderUseCase
	stats  StatsUseCase
	logger *zap.Logger
}

func NewOrderHandler(orders OrderUseCase, stats StatsUseCase, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, stats: stats, logger: logger}
}

type orderItemRequest struct {
	ProductID uint         `json:"productId"`
	Quantity  int          `json:"quantity"`
	Price     models.Money `json:"price"`
}

type createOrderRequest struct {
	Items           []orderItemRequest `json:"items"`
	ShippingAddress string             `json:"shippingAddress"`
	City            string             `json:"city"`
	State           string             `json:"state"`
	ZipCode         string             `json:"zipCode"`
	Country         string             `json:"country"`
	Phone           string             `json:"phone"`
	PaymentMethod   string             `json:"paymentMethod"`
	TotalAmount     models.Money       `json:"totalAmount"`
}

func (r createOrderRequest) toInput(userID uint) services.CreateOrderInput {
	items := make([]services.OrderItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, services.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return services.CreateOrderInput{
		UserID:          userID,
		Items:           items,
		ShippingAddress: r.ShippingAddress,
		City:            r.City,
		State:           r.State,
		ZipCode:         r.ZipCode,
		Country:         r.Country,
		Phone:           r.Phone,
		PaymentMethod:   r.PaymentMethod,
		TotalAmount:     r.TotalAmount,
	}
}

func currentUserID(c *gin.Context) uint {
	return c.MustGet(middleware.UserIDKey).(uint)
}

// 送出訂單
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid order data",
			"error":   err.Error(),
		})
		return
	}

	orderID, err := h.orders.CreateOrder(c.Request.Context(), req.toInput(currentUserID(c)))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"orderId": orderID,
	})
}

// 查詢買家的訂單列表
func (h *OrderHandler) MyOrders(c *gin.Context) {
	orders, err := h.orders.MyOrders(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// 查詢單筆訂單，只能查詢自己的訂單
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		h.writeError(c, services.ErrOrderNotFound)
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), currentUserID(c), uint(orderID))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// 查詢包含賣家商品的訂單
func (h *OrderHandler) SellerOrders(c *gin.Context) {
	orders, err := h.orders.SellerOrders(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) SellerStats(c *gin.Context) {
	stats, err := h.stats.SellerStats(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *OrderHandler) AdminStats(c *gin.Context) {
	stats, err := h.stats.AdminStats(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
