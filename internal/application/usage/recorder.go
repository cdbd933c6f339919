// Package usage 记录文本生成用量
package usage

import (
	"context"

	"audiobook-ai-api/internal/domain/service"
	apperrors "audiobook-ai-api/pkg/errors"
	"audiobook-ai-api/pkg/logger"
	"audiobook-ai-api/pkg/metrics"
)

// Recorder 将用量写入 Prometheus 指标和日志
type Recorder struct{}

var _ service.LLMUsageRecorder = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Record(ctx context.Context, in service.LLMUsageInput) {
	status := "success"
	switch {
	case in.Err != nil:
		status = statusFromError(in.Err)
	case in.Cached:
		status = "cached"
	}

	metrics.LLMCallTotal.WithLabelValues(in.Workflow, in.Provider, status).Inc()
	if in.Err != nil || in.Cached {
		if in.Err != nil {
			logger.Warn(ctx, "text generation failed",
				"workflow", in.Workflow,
				"provider", in.Provider,
				"status", status,
				"error", in.Err.Error(),
			)
		}
		return
	}

	metrics.LLMCallDuration.WithLabelValues(in.Workflow, in.Provider).Observe(in.Duration.Seconds())
	if in.CompletionTokens > 0 {
		metrics.LLMTokensUsed.WithLabelValues(in.Workflow, in.Provider).Add(float64(in.CompletionTokens))
	}
	logger.Debug(ctx, "text generation completed",
		"workflow", in.Workflow,
		"provider", in.Provider,
		"model", in.Model,
		"tokens", in.CompletionTokens,
		"duration_ms", in.Duration.Milliseconds(),
	)
}

func statusFromError(err error) string {
	switch {
	case apperrors.IsCode(err, apperrors.CodeNotConfigured):
		return "not_configured"
	case apperrors.IsCode(err, apperrors.CodeVendorError):
		return "vendor_error"
	case apperrors.IsCode(err, apperrors.CodeTransportError):
		return "transport_error"
	default:
		return "error"
	}
}
