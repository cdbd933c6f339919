// Package enhance 针对朗读场景改进文本
package enhance

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
)

const workflowName = "enhance"

// Result 增强结果，长度均按码点计算
// EnhancedLength 为去除首尾空白前的长度
type Result struct {
	EnhancedText    string
	OriginalLength  int
	EnhancedLength  int
	TokensUsed      int
	EnhancementType string
}

type Service struct {
	chain    *chain.TextChain
	provider string
}

func NewService(textChain *chain.TextChain, cfg *config.Config) *Service {
	return &Service{chain: textChain, provider: cfg.LLM.DefaultProvider}
}

// Enhance 未知类型按 improve 处理，响应中原样返回请求的类型
func (s *Service) Enhance(ctx context.Context, text, enhancementType string) (*Result, error) {
	if text == "" {
		return nil, apperrors.Validation("No text provided")
	}
	if enhancementType == "" {
		enhancementType = string(entity.EnhanceImprove)
	}
	parsed, known := entity.ParseEnhancementType(enhancementType)
	if !known {
		logger.Debug(ctx, "unknown enhancement type, falling back to improve", "type", enhancementType)
	}

	gen, err := s.chain.Invoke(ctx, &chain.TextInput{
		Workflow: workflowName,
		Provider: s.provider,
		PromptID: workflowprompt.EnhancePromptID(parsed),
		Vars:     map[string]any{"text": text},
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		EnhancedText:    strings.TrimSpace(gen.Text),
		OriginalLength:  utf8.RuneCountInString(text),
		EnhancedLength:  utf8.RuneCountInString(gen.Text),
		TokensUsed:      gen.TokensUsed,
		EnhancementType: enhancementType,
	}, nil
}
