package database

import (
	"context"
	"fmt"
	"time"

	"classhub_backend/internal/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// InitRedis 初始化 Redis 连接，失败时返回 nil（缓存为可选依赖）
func InitRedis(cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		zap.L().Warn("redis unavailable, caching disabled", zap.Error(err))
		return nil
	}

	zap.L().Info("redis connected", zap.String("addr", client.Options().Addr))
	return client
}
