// Package service 定义跨层共享的领域服务契约
package service

import (
	"context"
	"strings"
)

type llmCtxKey string

const (
	llmCtxKeyWorkflow llmCtxKey = "llm_workflow"
	llmCtxKeyProvider llmCtxKey = "llm_provider"
)

const unknownLabel = "unknown"

// WithWorkflowProvider 记录当前生成所属的业务流程与 provider，用于指标与日志
func WithWorkflowProvider(ctx context.Context, workflow, provider string) context.Context {
	if w := strings.TrimSpace(workflow); w != "" {
		ctx = context.WithValue(ctx, llmCtxKeyWorkflow, w)
	}
	if p := strings.TrimSpace(provider); p != "" {
		ctx = context.WithValue(ctx, llmCtxKeyProvider, p)
	}
	return ctx
}

func WorkflowFromContext(ctx context.Context) string {
	return labelFromContext(ctx, llmCtxKeyWorkflow)
}

func ProviderFromContext(ctx context.Context) string {
	return labelFromContext(ctx, llmCtxKeyProvider)
}

func labelFromContext(ctx context.Context, key llmCtxKey) string {
	if ctx == nil {
		return unknownLabel
	}
	s, ok := ctx.Value(key).(string)
	if !ok || strings.TrimSpace(s) == "" {
		return unknownLabel
	}
	return s
}
