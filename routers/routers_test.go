package routers

import (
	"Marketplace/jwt"
	"Marketplace/models"
	"Marketplace/services"
	"context"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testSecret = "test-secret"

type stubOrders struct{ getCalls int }

func (s *stubOrders) CreateOrder(context.Context, services.CreateOrderInput) (uint, error) {
	return 1, nil
}

func (s *stubOrders) MyOrders(context.Context, uint) ([]models.OrderWithItems, error) {
	return []models.OrderWithItems{}, nil
}

func (s *stubOrders) GetOrder(context.Context, uint, uint) (*models.OrderWithItems, error) {
	s.getCalls++
	return nil, services.ErrOrderNotFound
}

func (s *stubOrders) SellerOrders(context.Context, uint) ([]models.SellerOrder, error) {
	return []models.SellerOrder{}, nil
}

type stubStats struct{}

func (stubStats) SellerStats(context.Context, uint) (*models.SellerStats, error) {
	return &models.SellerStats{}, nil
}

func (stubStats) AdminStats(context.Context) (*models.AdminStats, error) {
	return &models.AdminStats{}, nil
}

func setup(t *testing.T) (*gin.Engine, *stubOrders) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	orders := &stubOrders{}
	router := SetupRouters(Dependencies{
		Orders:    orders,
		Stats:     stubStats{},
		JWTSecret: testSecret,
		Logger:    zap.NewNop(),
	})
	return router, orders
}

func get(t *testing.T, router *gin.Engine, path string, userID uint, role string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if userID != 0 {
		token, err := jwt.GenerateToken(testSecret, userID, role, time.Now().Add(time.Hour))
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRoutesRequireLogin(t *testing.T) {
	router, _ := setup(t)
	assert.Equal(t, http.StatusUnauthorized, get(t, router, "/api/orders/myorders", 0, ""))
	assert.Equal(t, http.StatusUnauthorized, get(t, router, "/api/orders/1", 0, ""))
}

func TestHealthIsPublic(t *testing.T) {
	router, _ := setup(t)
	assert.Equal(t, http.StatusOK, get(t, router, "/health", 0, ""))
}

func TestStaticRoutesWinOverOrderID(t *testing.T) {
	router, orders := setup(t)

	assert.Equal(t, http.StatusOK, get(t, router, "/api/orders/myorders", 7, models.RoleBuyer))
	assert.Equal(t, http.StatusOK, get(t, router, "/api/orders/seller", 3, models.RoleSeller))
	assert.Equal(t, http.StatusOK, get(t, router, "/api/orders/seller/stats", 3, models.RoleSeller))
	assert.Equal(t, http.StatusOK, get(t, router, "/api/orders/admin/stats", 1, models.RoleAdmin))
	assert.Zero(t, orders.getCalls)

	assert.Equal(t, http.StatusNotFound, get(t, router, "/api/orders/5", 7, models.RoleBuyer))
	assert.Equal(t, 1, orders.getCalls)
}

func TestRoleGates(t *testing.T) {
	router, _ := setup(t)
	assert.Equal(t, http.StatusForbidden, get(t, router, "/api/orders/seller/stats", 7, models.RoleBuyer))
	assert.Equal(t, http.StatusForbidden, get(t, router, "/api/orders/admin/stats", 3, models.RoleSeller))
}
