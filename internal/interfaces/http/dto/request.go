package dto

import (
	"github.com/gin-gonic/gin"
)

// RewriteTextRequest 语气改写请求
type RewriteTextRequest struct {
	Text string `json:"text"`
	Tone string `json:"tone"`
}

// GenerateSpeechRequest 语音合成请求
type GenerateSpeechRequest struct {
	Text  string   `json:"text"`
	Voice string   `json:"voice"`
	Speed *float64 `json:"speed,omitempty"`
}

// EnhanceTextRequest 文本增强请求
type EnhanceTextRequest struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// GenerateScriptRequest 脚本生成请求
type GenerateScriptRequest struct {
	Topic    string `json:"topic"`
	Chapters *int   `json:"chapters,omitempty"`
	Style    string `json:"style"`
}

// AnalyzeContentRequest 内容分析请求
type AnalyzeContentRequest struct {
	Text string `json:"text"`
}

// SuggestVoicesRequest 音色建议请求
type SuggestVoicesRequest struct {
	Text  string `json:"text"`
	Genre string `json:"genre"`
}

// BindJSON 解析请求体，失败时写入 400 并返回 false
// 必填字段由服务层校验，以便返回统一的错误信息
func BindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return false
	}
	return true
}
