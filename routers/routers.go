package routers

import (
	"Marketplace/handlers"
	"Marketplace/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"net/http"
)

type Dependencies struct {
	Orders       handlers.OrderUseCase
	Stats        handlers.StatsUseCase
	JWTSecret    string
	Logger       *zap.Logger
	HealthChecks []handlers.HealthCheck
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")
		c.Next()
	}
}

func SetupRouters(deps Dependencies) *gin.Engine {
	//建立Gin路由器
	router := gin.New()
	router.Use(gin.Recovery(), middleware.LoggerMiddleware(deps.Logger), corsMiddleware())
	_ = router.SetTrustedProxies(nil)

	router.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	//無須登入
	router.GET("/health", handlers.HealthHandler(deps.HealthChecks...))

	orderHandler := handlers.NewOrderHandler(deps.Orders, deps.Stats, deps.Logger)

	////需要登入，使用中間件檢查Token
	orders := router.Group("/api/orders")
	orders.Use(middleware.AuthMiddleware(deps.JWTSecret, deps.Logger), middleware.CheckLoginMiddleware())
	{
		//送出訂單並扣庫存
		orders.POST("", orderHandler.CreateOrder)
		//查詢自己的訂單列表
		orders.GET("/myorders", orderHandler.MyOrders)

		////需要seller身分
		seller := orders.Group("/seller")
		seller.Use(middleware.CheckSellerPermissionMiddleware())
		{
			//查詢賣家統計
			seller.GET("/stats", orderHandler.SellerStats)
			//查詢包含賣家商品的訂單
			seller.GET("", orderHandler.SellerOrders)
		}

		////需要admin身分
		admin := orders.Group("/admin")
		admin.Use(middleware.CheckAdminPermissionMiddleware())
		{
			//查詢全站統計
			admin.GET("/stats", orderHandler.AdminStats)
		}

		//查詢訂單詳細資訊
		orders.GET("/:id", orderHandler.GetOrder)
	}

	return router
}
