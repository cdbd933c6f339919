// Package middleware 提供 HTTP 中间件
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"audiobook-ai-api/pkg/metrics"
)

// Metrics Prometheus 指标采集中间件；skipPath 通常为指标端点本身
func Metrics(skipPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == skipPath {
			c.Next()
			return
		}

		start := time.Now()
		method := c.Request.Method

		c.Next()

		path := routeLabel(c)
		if reqSize := c.Request.ContentLength; reqSize > 0 {
			metrics.HTTPRequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
		}
		metrics.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		if respSize := c.Writer.Size(); respSize > 0 {
			metrics.HTTPResponseSize.WithLabelValues(method, path).Observe(float64(respSize))
		}
	}
}

// routeLabel 使用路由模板避免 /api/download-audio/:id 产生高基数标签
func routeLabel(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return "unmatched"
}
