package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"audiobook-ai-api/internal/application/rewrite"
	"audiobook-ai-api/internal/application/speech"
	"audiobook-ai-api/internal/interfaces/http/dto"
)

// AudiobookHandler 改写与语音合成处理器
type AudiobookHandler struct {
	rewrite *rewrite.Service
	speech  *speech.Service
}

// NewAudiobookHandler 创建处理器
func NewAudiobookHandler(rewriteSvc *rewrite.Service, speechSvc *speech.Service) *AudiobookHandler {
	return &AudiobookHandler{
		rewrite: rewriteSvc,
		speech:  speechSvc,
	}
}

// RewriteText 按语气改写文本
// @Summary 语气改写
// @Tags Audiobook
// @Accept json
// @Produce json
// @Param body body dto.RewriteTextRequest true "改写请求"
// @Success 200 {object} dto.RewriteTextResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/rewrite-text [post]
func (h *AudiobookHandler) RewriteText(c *gin.Context) {
	var req dto.RewriteTextRequest
	if !dto.BindJSON(c, &req) {
		return
	}

	res, err := h.rewrite.Rewrite(c.Request.Context(), req.Text, req.Tone)
	if err != nil {
		dto.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRewriteTextResponse(res))
}

// GenerateSpeech 文本转语音
// @Summary 语音合成
// @Tags Audiobook
// @Accept json
// @Produce json
// @Param body body dto.GenerateSpeechRequest true "合成请求"
// @Success 200 {object} dto.GenerateSpeechResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/generate-speech [post]
func (h *AudiobookHandler) GenerateSpeech(c *gin.Context) {
	var req dto.GenerateSpeechRequest
	if !dto.BindJSON(c, &req) {
		return
	}

	res, err := h.speech.Generate(c.Request.Context(), req.Text, req.Voice, req.Speed)
	if err != nil {
		dto.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToGenerateSpeechResponse(res))
}

// DownloadAudio 音频下载占位接口，服务端不保存音频文件
// @Router /api/download-audio/{id} [get]
func (h *AudiobookHandler) DownloadAudio(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Audio download would be implemented here",
	})
}
