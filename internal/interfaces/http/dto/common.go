// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "audiobook-ai-api/pkg/errors"
	"audiobook-ai-api/pkg/logger"
)

// ErrorResponse 错误响应结构
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Error 返回错误响应
func Error(c *gin.Context, httpCode int, code apperrors.ErrorCode, message string) {
	c.JSON(httpCode, ErrorResponse{
		Error:     message,
		Code:      string(code),
		RequestID: c.GetString("request_id"),
	})
}

// BadRequest 返回 400 错误
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, apperrors.CodeInvalidParam, message)
}

// NotFound 返回 404 错误
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, apperrors.CodeNotFound, message)
}

// FromError 把任意错误映射为状态码与错误信封
// 非 AppError 只返回通用信息，原始错误仅写入日志
func FromError(c *gin.Context, err error) {
	appErr := apperrors.AsAppError(err)

	status := appErr.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if status >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "request failed", err,
			"code", string(appErr.Code),
			"upstream_status", appErr.UpstreamStatus,
			"detail", appErr.Detail,
			"path", c.Request.URL.Path,
		)
	}

	Error(c, status, appErr.Code, appErr.Message)
}
