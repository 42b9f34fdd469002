package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"classhub_backend/internal/config"
	"classhub_backend/internal/model"
	"classhub_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:     "unit-test-secret-key-0123456789abcdef",
			ExpireTime: time.Hour,
		},
	}
}

func signToken(t *testing.T, cfg *config.Config, role model.UserRole) string {
	t.Helper()
	user := &model.User{Email: "t@example.com", Role: role}
	user.ID = 7
	token, err := util.GenerateJWT(user, cfg.JWT.Secret, cfg.JWT.ExpireTime)
	require.NoError(t, err)
	return token
}

func setupRouter(cfg *config.Config, roles ...model.UserRole) *gin.Engine {
	router := gin.New()
	group := router.Group("/", AuthMiddleware(cfg))
	if len(roles) > 0 {
		group.Use(RoleMiddleware(roles...))
	}
	group.GET("/ping", func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userId": claims.UserID})
	})
	return router
}

func doRequest(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	cfg := testConfig()
	router := setupRouter(cfg)

	t.Run("有效 token 放行并注入用户", func(t *testing.T) {
		w := doRequest(router, signToken(t, cfg, model.Student))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"userId":7`)
	})

	t.Run("缺少 Authorization 头", func(t *testing.T) {
		w := doRequest(router, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("非 Bearer 格式", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Basic abc123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("伪造 token", func(t *testing.T) {
		w := doRequest(router, "not-a-real-token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRoleMiddleware(t *testing.T) {
	cfg := testConfig()

	t.Run("角色匹配放行", func(t *testing.T) {
		router := setupRouter(cfg, model.Teacher)
		w := doRequest(router, signToken(t, cfg, model.Teacher))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("角色不匹配拒绝", func(t *testing.T) {
		router := setupRouter(cfg, model.Teacher)
		w := doRequest(router, signToken(t, cfg, model.Student))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("管理员不受角色限制", func(t *testing.T) {
		router := setupRouter(cfg, model.Teacher)
		w := doRequest(router, signToken(t, cfg, model.Admin))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("未经认证直接拒绝", func(t *testing.T) {
		router := setupRouter(cfg, model.Teacher)
		w := doRequest(router, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
