package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"audiobook-ai-api/internal/application/analysis"
	"audiobook-ai-api/internal/application/enhance"
	"audiobook-ai-api/internal/application/script"
	"audiobook-ai-api/internal/application/voice"
	"audiobook-ai-api/internal/interfaces/http/dto"
)

// GraniteHandler 文本生成相关处理器
type GraniteHandler struct {
	enhance  *enhance.Service
	script   *script.Service
	analysis *analysis.Service
	voice    *voice.Service
}

// NewGraniteHandler 创建处理器
func NewGraniteHandler(
	enhanceSvc *enhance.Service,
	scriptSvc *script.Service,
	analysisSvc *analysis.Service,
	voiceSvc *voice.Service,
) *GraniteHandler {
	return &GraniteHandler{
		enhance:  enhanceSvc,
		script:   scriptSvc,
		analysis: analysisSvc,
		voice:    voiceSvc,
	}
}

// EnhanceText 改进文本以适合朗读
// @Summary 文本增强
// @Tags Granite
// @Accept json
// @Produce json
// @Param body body dto.EnhanceTextRequest true "增强请求"
// @Success 200 {object} dto.EnhanceTextResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/granite/enhance-text [post]
func (h *GraniteHandler) EnhanceText(c *gin.Context) {
	var req dto.EnhanceTextRequest
	if !dto.BindJSON(c, &req) {
		return
	}

	res, err := h.enhance.Enhance(c.Request.Context(), req.Text, req.Type)
	if err != nil {
		dto.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEnhanceTextResponse(res))
}

// GenerateScript 生成有声书脚本
// @Summary 脚本生成
// @Tags Granite
// @Accept json
// @Produce json
// @Param body body dto.GenerateScriptRequest true "脚本请求"
// @Success 200 {object} dto.GenerateScriptResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/granite/generate-script [post]
func (h *GraniteHandler) GenerateScript(c *gin.Context) {
	var req dto.GenerateScriptRequest
	if !dto.BindJSON(c, &req) {
		return
	}

	res, err := h.script.Generate(c.Request.Context(), req.Topic, req.Chapters, req.Style)
	if err != nil {
		dto.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToGenerateScriptResponse(res))
}

// AnalyzeContent 分析文本的朗读适配度
// @Summary 内容分析
// @Tags Granite
// @Accept json
// @Produce json
// @Param body body dto.AnalyzeContentRequest true "分析请求"
// @Success 200 {object} dto.AnalyzeContentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/granite/analyze-content [post]
func (h *GraniteHandler) AnalyzeContent(c *gin.Context) {
	var req dto.AnalyzeContentRequest
	if !dto.BindJSON(c, &req) {
		return
	}

	res, err := h.analysis.Analyze(c.Request.Context(), req.Text)
	if err != nil {
		dto.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAnalyzeContentResponse(res))
}

// SuggestVoices 音色建议
// @Summary 音色建议
// @Tags Granite
// @Accept json
// @Produce json
// @Param body body dto.SuggestVoicesRequest true "建议请求"
// @Success 200 {object} dto.SuggestVoicesResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/granite/suggest-voices [post]
func (h *GraniteHandler) SuggestVoices(c *gin.Context) {
	var req dto.SuggestVoicesRequest
	if !dto.BindJSON(c, &req) {
		return
	}

	res, err := h.voice.Suggest(c.Request.Context(), req.Text, req.Genre)
	if err != nil {
		dto.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSuggestVoicesResponse(res))
}
