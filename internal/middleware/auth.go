package middleware

import (
	"strings"
	"time"

	"classhub_backend/internal/config"
	"classhub_backend/internal/model"
	"classhub_backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware 校验 Bearer Token 并注入用户信息
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(parts[1], cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Set("userID", claims.UserID)
		c.Set("userRole", claims.Role)
		c.Set("userEmail", claims.Email)
		c.Next()
	}
}

// RoleMiddleware 限制路由只允许指定角色访问，管理员不受限制
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("userRole")
		if !exists {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		role, ok := roleVal.(model.UserRole)
		if !ok {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		if role == model.Admin {
			c.Next()
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		util.Forbidden(c)
		c.Abort()
	}
}

// LastSeenUpdater 更新用户活跃时间的最小接口
type LastSeenUpdater interface {
	UpdateLastSeen(userID uint, at time.Time)
}

// ActivityMiddleware 异步记录用户最近活跃时间
func ActivityMiddleware(updater LastSeenUpdater) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		userID, exists := c.Get("userID")
		if !exists {
			return
		}
		id, ok := userID.(uint)
		if !ok {
			return
		}

		go func() {
			defer func() {
				if r := recover(); r != nil {
					zap.L().Error("panic in activity updater", zap.Any("recover", r))
				}
			}()
			updater.UpdateLastSeen(id, time.Now())
		}()
	}
}
