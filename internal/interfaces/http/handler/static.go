package handler

import (
	"os"

	"github.com/gin-gonic/gin"

	"audiobook-ai-api/internal/config"
	"audiobook-ai-api/internal/interfaces/http/dto"
)

// StaticHandler 前端页面处理器
type StaticHandler struct {
	index string
}

func NewStaticHandler(cfg *config.Config) *StaticHandler {
	return &StaticHandler{index: cfg.Server.Static.Index}
}

// Index 返回前端页面，文件不存在时返回 404
func (h *StaticHandler) Index(c *gin.Context) {
	info, err := os.Stat(h.index)
	if h.index == "" || err != nil || info.IsDir() {
		dto.NotFound(c, "index page not found")
		return
	}
	c.File(h.index)
}
