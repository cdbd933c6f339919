package rewrite

import (
	"context"
	"strings"
	"unicode/utf8"

	"audiobook-ai-api/internal/config"
	"audiobook-ai-api/internal/domain/entity"
	"audiobook-ai-api/internal/workflow/chain"
	workflowprompt "audiobook-ai-api/internal/workflow/prompt"
	apperrors "audiobook-ai-api/pkg/errors"
	"audiobook-ai-api/pkg/logger"
	"audiobook-ai-api/pkg/metrics"
)

// 改写模式
const (
	ModeSimulated = "simulated"
	ModeVendor    = "vendor"
)

const workflowName = "rewrite"

// Result 改写结果
type Result struct {
	OriginalText  string
	RewrittenText string
	// Tone 原样返回请求中的语气
	Tone string
	Mode string
}

// Service 语气改写服务
type Service struct {
	chain    *chain.TextChain
	provider string
	simulate bool
}

// NewService 创建改写服务
func NewService(textChain *chain.TextChain, cfg *config.Config) *Service {
	return &Service{
		chain:    textChain,
		provider: cfg.LLM.RewriteProvider,
		simulate: cfg.Features.Simulation.Force,
	}
}

// Rewrite 改写文本；provider 未配置或强制模拟时走本地替换
func (s *Service) Rewrite(ctx context.Context, text, tone string) (*Result, error) {
	if text == "" {
		return nil, apperrors.Validation("No text provided")
	}
	if tone == "" {
		tone = string(entity.ToneNeutral)
	}
	parsed, known := entity.ParseTone(tone)
	if !known {
		logger.Debug(ctx, "unknown tone, falling back to neutral", "tone", tone)
	}

	res := &Result{OriginalText: text, Tone: tone}
	if s.simulate || !s.chain.Configured(s.provider) {
		res.RewrittenText = Simulate(text, parsed)
		res.Mode = ModeSimulated
		metrics.RewriteTotal.WithLabelValues(res.Mode, string(parsed)).Inc()
		return res, nil
	}

	gen, err := s.chain.Invoke(ctx, &chain.TextInput{
		Workflow:  workflowName,
		Provider:  s.provider,
		PromptID:  workflowprompt.RewritePromptID(parsed),
		Vars:      map[string]any{"text": text},
		MaxTokens: utf8.RuneCountInString(text) * 2,
	})
	if err != nil {
		return nil, err
	}
	res.RewrittenText = strings.TrimSpace(gen.Text)
	res.Mode = ModeVendor
	metrics.RewriteTotal.WithLabelValues(res.Mode, string(parsed)).Inc()
	return res, nil
}
