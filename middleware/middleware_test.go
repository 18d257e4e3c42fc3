package middleware

import (
	"Marketplace/jwt"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(logger *zap.Logger, gates ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(LoggerMiddleware(logger), AuthMiddleware(testSecret, logger), CheckLoginMiddleware())
	router.Use(gates...)
	router.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID": c.MustGet(UserIDKey),
			"role":   c.MustGet(RoleKey),
		})
	})
	return router
}

func bearer(t *testing.T, userID uint, role string) string {
	t.Helper()
	token, err := jwt.GenerateToken(testSecret, userID, role, time.Now().Add(time.Hour))
	require.NoError(t, err)
	return "Bearer " + token
}

func do(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMissingTokenIsUnauthorized(t *testing.T) {
	w := do(newRouter(zap.NewNop()), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestInvalidTokenIsUnauthorized(t *testing.T) {
	w := do(newRouter(zap.NewNop()), "Bearer nonsense")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(newRouter(zap.NewNop()), "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestValidTokenSetsIdentity(t *testing.T) {
	w := do(newRouter(zap.NewNop()), bearer(t, 7, "buyer"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userID":7,"role":"buyer"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestSellerGate(t *testing.T) {
	router := newRouter(zap.NewNop(), CheckSellerPermissionMiddleware())

	assert.Equal(t, http.StatusForbidden, do(router, bearer(t, 7, "buyer")).Code)
	assert.Equal(t, http.StatusOK, do(router, bearer(t, 3, "seller")).Code)
	assert.Equal(t, http.StatusOK, do(router, bearer(t, 1, "admin")).Code)
}

func TestAdminGate(t *testing.T) {
	router := newRouter(zap.NewNop(), CheckAdminPermissionMiddleware())

	assert.Equal(t, http.StatusForbidden, do(router, bearer(t, 3, "seller")).Code)
	assert.Equal(t, http.StatusOK, do(router, bearer(t, 1, "admin")).Code)
}

func TestLoggerKeepsClientRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	router := newRouter(zap.New(core))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", bearer(t, 7, "buyer"))
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-123", fields["request_id"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.Equal(t, "/whoami", fields["path"])
}
