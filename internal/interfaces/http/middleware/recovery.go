// Package middleware 提供 HTTP 中间件
package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"audiobook-ai-api/internal/interfaces/http/dto"
	"audiobook-ai-api/pkg/errors"
	"audiobook-ai-api/pkg/logger"
)

// Recovery Panic 恢复中间件，堆栈只写日志
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error(c.Request.Context(), "panic recovered",
					fmt.Errorf("%v", err),
					"stack", string(debug.Stack()),
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Error:     errors.ErrInternalError.Message,
					Code:      string(errors.CodeInternalError),
					RequestID: c.GetString("request_id"),
				})
			}
		}()

		c.Next()
	}
}
