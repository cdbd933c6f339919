// Package middleware 提供 HTTP 中间件
package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"audiobook-ai-api/internal/infrastructure/persistence/redis"
	"audiobook-ai-api/internal/interfaces/http/dto"
	"audiobook-ai-api/pkg/errors"
	"audiobook-ai-api/pkg/logger"
)

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	// Enabled 是否启用限流
	Enabled bool
	// RequestsPerSecond 每个客户端 IP 每个路径每秒请求数
	RequestsPerSecond int
}

// 限流响应头
const (
	RateLimitLimitHeader     = "X-RateLimit-Limit"
	RateLimitRemainingHeader = "X-RateLimit-Remaining"
)

// RateLimiter 限流器接口
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	Remaining(ctx context.Context, key string, limit int, window time.Duration) (int, error)
}

// RateLimit 限流中间件，limiter 为空或未启用时直接放行
func RateLimit(cfg RateLimitConfig, limiter RateLimiter) gin.HandlerFunc {
	if !cfg.Enabled || limiter == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 10
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := redis.BuildRateLimitKey(c.ClientIP(), rateLimitPath(c))

		allowed, err := limiter.Allow(ctx, key, cfg.RequestsPerSecond, time.Second)
		if err != nil {
			// 限流器故障时放行
			logger.Warn(ctx, "rate limiter unavailable", "error", err.Error())
			c.Next()
			return
		}

		c.Header(RateLimitLimitHeader, strconv.Itoa(cfg.RequestsPerSecond))
		if remaining, err := limiter.Remaining(ctx, key, cfg.RequestsPerSecond, time.Second); err == nil {
			c.Header(RateLimitRemainingHeader, strconv.Itoa(remaining))
		}

		if !allowed {
			dto.Error(c, errors.ErrTooManyRequests.HTTPStatus, errors.CodeTooManyRequests, errors.ErrTooManyRequests.Message)
			c.Abort()
			return
		}

		c.Next()
	}
}

// rateLimitPath 按路由模板计数，/api/download-audio/:id 共用一个窗口
func rateLimitPath(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return c.Request.URL.Path
}
