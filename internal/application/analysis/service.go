package analysis

import (
	"context"
	"strings"

	"audiobook-ai-api/internal/config"
	"audiobook-ai-api/internal/workflow/chain"
	workflowprompt "audiobook-ai-api/internal/workflow/prompt"
	apperrors "audiobook-ai-api/pkg/errors"
)

const workflowName = "analyze"

// Result 分析结果
type Result struct {
	Analysis   string
	Metrics    Metrics
	TokensUsed int
}

// Service 内容分析服务
type Service struct {
	chain    *chain.TextChain
	provider string
}

// NewService 创建内容分析服务
func NewService(textChain *chain.TextChain, cfg *config.Config) *Service {
	return &Service{chain: textChain, provider: cfg.LLM.DefaultProvider}
}

// Analyze 调用模型分析文本，并附带本地估算的朗读指标
func (s *Service) Analyze(ctx context.Context, text string) (*Result, error) {
	if text == "" {
		return nil, apperrors.Validation("No text provided")
	}

	gen, err := s.chain.Invoke(ctx, &chain.TextInput{
		Workflow: workflowName,
		Provider: s.provider,
		PromptID: workflowprompt.PromptAnalysisV1,
		Vars:     map[string]any{"text": text},
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Analysis:   strings.TrimSpace(gen.Text),
		Metrics:    Estimate(text),
		TokensUsed: gen.TokensUsed,
	}, nil
}
