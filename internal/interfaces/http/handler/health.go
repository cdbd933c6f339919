// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"audiobook-ai-api/internal/config"
	"audiobook-ai-api/internal/infrastructure/persistence/redis"
	"audiobook-ai-api/internal/interfaces/http/dto"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	cfg   *config.Config
	redis *redis.Client
	now   func() time.Time
}

// NewHealthHandler 创建健康检查处理器，redisClient 可为空
func NewHealthHandler(cfg *config.Config, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		cfg:   cfg,
		redis: redisClient,
		now:   time.Now,
	}
}

type readinessCheck struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
}

type readinessResponse struct {
	Status string                     `json:"status"`
	Checks map[string]*readinessCheck `json:"checks,omitempty"`
}

// Health 健康检查接口，始终返回 200
// @Summary 健康检查
// @Tags System
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	services := make(map[string]bool, len(h.cfg.LLM.Providers)+1)
	for name, p := range h.cfg.LLM.Providers {
		services[name] = p.Configured()
	}
	services["watson_tts"] = h.cfg.Speech.Watson.Configured()

	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:     "healthy",
		Timestamp:  h.now().Format(time.RFC3339),
		Configured: services[h.cfg.LLM.DefaultProvider],
		Services:   services,
	})
}

// Ready 就绪检查接口；启用 Redis 时检查连通性
// @Summary 就绪检查
// @Tags System
// @Produce json
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]*readinessCheck{
		"redis": {Status: "disabled"},
	}
	ready := true

	if h.redis != nil {
		start := time.Now()
		err := h.redis.HealthCheck(ctx)
		checks["redis"].LatencyMs = time.Since(start).Milliseconds()
		if err != nil {
			checks["redis"].Status = "error"
			checks["redis"].Error = err.Error()
			ready = false
		} else {
			checks["redis"].Status = "ok"
		}
	}

	resp := readinessResponse{
		Status: "ok",
		Checks: checks,
	}
	if !ready {
		resp.Status = "not_ready"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Live 存活检查接口
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
