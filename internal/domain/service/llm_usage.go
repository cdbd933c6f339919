package service

import (
	"context"
	"time"
)

// LLMUsageInput 一次文本生成的可观测数据
type LLMUsageInput struct {
	Workflow string
	Provider string
	Model    string

	CompletionTokens int
	Duration         time.Duration
	Cached           bool
	Err              error
}

// LLMUsageRecorder 记录生成用量，实现应为 best-effort，不阻塞主流程
type LLMUsageRecorder interface {
	Record(ctx context.Context, in LLMUsageInput)
}
