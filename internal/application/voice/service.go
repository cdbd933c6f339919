// Package voice 根据文本与体裁给出朗读音色建议
package voice

import (
	"context"
	"strings"

	"audiobook-ai-api/internal/config"
	"audiobook-ai-api/internal/workflow/chain"
	workflowprompt "audiobook-ai-api/internal/workflow/prompt"
)

const (
	DefaultGenre = "general"

	sampleRunes      = 500
	maxSuggestTokens = 1000
	workflowName     = "voices"
)

// Result 音色建议
type Result struct {
	Suggestions string
	Genre       string
	TokensUsed  int
}

// Service 音色建议服务
type Service struct {
	chain    *chain.TextChain
	provider string
}

// NewService 创建音色建议服务
func NewService(textChain *chain.TextChain, cfg *config.Config) *Service {
	return &Service{chain: textChain, provider: cfg.LLM.DefaultProvider}
}

// Suggest 只取文本前 500 个字符作为样本；文本可以为空
func (s *Service) Suggest(ctx context.Context, text, genre string) (*Result, error) {
	if genre == "" {
		genre = DefaultGenre
	}

	gen, err := s.chain.Invoke(ctx, &chain.TextInput{
		Workflow: workflowName,
		Provider: s.provider,
		PromptID: workflowprompt.PromptVoicesV1,
		Vars: map[string]any{
			"genre":       genre,
			"text_sample": Sample(text),
		},
		MaxTokens: maxSuggestTokens,
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Suggestions: strings.TrimSpace(gen.Text),
		Genre:       genre,
		TokensUsed:  gen.TokensUsed,
	}, nil
}

// Sample 截取前 500 个码点
func Sample(text string) string {
	n := 0
	for i := range text {
		if n == sampleRunes {
			return text[:i]
		}
		n++
	}
	return text
}
