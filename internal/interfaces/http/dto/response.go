package dto

import (
	"time"

	"audiobook-ai-api/internal/application/analysis"
	"audiobook-ai-api/internal/application/enhance"
	"audiobook-ai-api/internal/application/rewrite"
	"audiobook-ai-api/internal/application/script"
	"audiobook-ai-api/internal/application/speech"
	"audiobook-ai-api/internal/application/voice"
	"audiobook-ai-api/internal/domain/entity"
)

const statusSuccess = "success"

// RewriteTextResponse 语气改写响应
type RewriteTextResponse struct {
	OriginalText  string `json:"original_text"`
	RewrittenText string `json:"rewritten_text"`
	Tone          string `json:"tone"`
	Status        string `json:"status"`
}

// ToRewriteTextResponse 转换改写结果
func ToRewriteTextResponse(r *rewrite.Result) *RewriteTextResponse {
	return &RewriteTextResponse{
		OriginalText:  r.OriginalText,
		RewrittenText: r.RewrittenText,
		Tone:          r.Tone,
		Status:        statusSuccess,
	}
}

// GenerateSpeechResponse 语音合成响应
type GenerateSpeechResponse struct {
	AudioURL string `json:"audio_url"`
	Voice    string `json:"voice"`
	Status   string `json:"status"`
}

// ToGenerateSpeechResponse 转换合成结果
func ToGenerateSpeechResponse(r *speech.Result) *GenerateSpeechResponse {
	return &GenerateSpeechResponse{
		AudioURL: r.AudioURL,
		Voice:    string(r.Voice),
		Status:   statusSuccess,
	}
}

// MessageResponse 仅包含提示信息的响应
type MessageResponse struct {
	Message string `json:"message"`
}

// EnhanceTextResponse 文本增强响应
type EnhanceTextResponse struct {
	EnhancedText    string `json:"enhanced_text"`
	OriginalLength  int    `json:"original_length"`
	EnhancedLength  int    `json:"enhanced_length"`
	TokensUsed      int    `json:"tokens_used"`
	EnhancementType string `json:"enhancement_type"`
}

func ToEnhanceTextResponse(r *enhance.Result) *EnhanceTextResponse {
	return &EnhanceTextResponse{
		EnhancedText:    r.EnhancedText,
		OriginalLength:  r.OriginalLength,
		EnhancedLength:  r.EnhancedLength,
		TokensUsed:      r.TokensUsed,
		EnhancementType: r.EnhancementType,
	}
}

// GenerateScriptResponse 脚本生成响应
type GenerateScriptResponse struct {
	Script         string                 `json:"script"`
	Chapters       []entity.ChapterRecord `json:"chapters"`
	Topic          string                 `json:"topic"`
	TokensUsed     int                    `json:"tokens_used"`
	GenerationTime string                 `json:"generation_time"`
}

func ToGenerateScriptResponse(r *script.Result) *GenerateScriptResponse {
	chapters := r.Chapters
	if chapters == nil {
		chapters = []entity.ChapterRecord{}
	}
	return &GenerateScriptResponse{
		Script:         r.Script,
		Chapters:       chapters,
		Topic:          r.Topic,
		TokensUsed:     r.TokensUsed,
		GenerationTime: r.GenerationTime.Format(time.RFC3339),
	}
}

// AnalyzeContentResponse 内容分析响应
type AnalyzeContentResponse struct {
	Analysis   string           `json:"analysis"`
	Metrics    analysis.Metrics `json:"metrics"`
	TokensUsed int              `json:"tokens_used"`
}

func ToAnalyzeContentResponse(r *analysis.Result) *AnalyzeContentResponse {
	return &AnalyzeContentResponse{
		Analysis:   r.Analysis,
		Metrics:    r.Metrics,
		TokensUsed: r.TokensUsed,
	}
}

// SuggestVoicesResponse 音色建议响应
type SuggestVoicesResponse struct {
	Suggestions string `json:"suggestions"`
	Genre       string `json:"genre"`
	TokensUsed  int    `json:"tokens_used"`
}

func ToSuggestVoicesResponse(r *voice.Result) *SuggestVoicesResponse {
	return &SuggestVoicesResponse{
		Suggestions: r.Suggestions,
		Genre:       r.Genre,
		TokensUsed:  r.TokensUsed,
	}
}

// HealthResponse 健康检查响应
// Configured 表示默认文本生成 provider 是否配置了凭据
type HealthResponse struct {
	Status     string          `json:"status"`
	Timestamp  string          `json:"timestamp"`
	Configured bool            `json:"configured"`
	Services   map[string]bool `json:"services,omitempty"`
}
