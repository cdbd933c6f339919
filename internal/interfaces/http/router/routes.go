// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes 注册 /api 下的业务路由
func RegisterAPIRoutes(api *gin.RouterGroup, h *RouterHandlers) {
	// 改写与语音
	api.POST("/rewrite-text", h.Audiobook.RewriteText)
	api.POST("/generate-speech", h.Audiobook.GenerateSpeech)
	api.GET("/download-audio/:id", h.Audiobook.DownloadAudio)

	// 文本生成
	granite := api.Group("/granite")
	{
		granite.POST("/enhance-text", h.Granite.EnhanceText)
		granite.POST("/generate-script", h.Granite.GenerateScript)
		granite.POST("/analyze-content", h.Granite.AnalyzeContent)
		granite.POST("/suggest-voices", h.Granite.SuggestVoices)
	}
}
