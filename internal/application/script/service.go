package script

import (
	"context"
	"strconv"
	"strings"
	"time"

	"audiobook-ai-api/internal/config"
	"audiobook-ai-api/internal/domain/entity"
	"audiobook-ai-api/internal/workflow/chain"
	workflowprompt "audiobook-ai-api/internal/workflow/prompt"
	apperrors "audiobook-ai-api/pkg/errors"
	"audiobook-ai-api/pkg/logger"
	"audiobook-ai-api/pkg/metrics"
)

const (
	DefaultChapters = 5
	DefaultStyle    = "educational"

	maxScriptTokens = 3000
	workflowName    = "script"
)

// Result 脚本生成结果
type Result struct {
	Script         string
	Chapters       []entity.ChapterRecord
	Topic          string
	TokensUsed     int
	GenerationTime time.Time
}

// Service 脚本生成服务
type Service struct {
	chain    *chain.TextChain
	provider string
	now      func() time.Time
}

// NewService 创建脚本生成服务
func NewService(textChain *chain.TextChain, cfg *config.Config) *Service {
	return &Service{
		chain:    textChain,
		provider: cfg.LLM.DefaultProvider,
		now:      time.Now,
	}
}

// Generate 生成脚本并按章节拆分；chapters 为空时默认 5 章
func (s *Service) Generate(ctx context.Context, topic string, chapters *int, style string) (*Result, error) {
	if topic == "" {
		return nil, apperrors.Validation("No topic provided")
	}
	count := DefaultChapters
	if chapters != nil {
		count = *chapters
	}
	if count <= 0 {
		return nil, apperrors.Validation("chapters must be a positive integer")
	}
	if style == "" {
		style = DefaultStyle
	}

	gen, err := s.chain.Invoke(ctx, &chain.TextInput{
		Workflow: workflowName,
		Provider: s.provider,
		PromptID: workflowprompt.PromptScriptV1,
		Vars: map[string]any{
			"topic":    topic,
			"chapters": strconv.Itoa(count),
			"style":    style,
		},
		MaxTokens: maxScriptTokens,
	})
	if err != nil {
		return nil, err
	}

	script := strings.TrimSpace(gen.Text)
	parsed := ParseChapters(script)
	metrics.ScriptChapters.Observe(float64(len(parsed)))
	if len(parsed) != count {
		logger.Debug(ctx, "chapter count differs from request", "requested", count, "parsed", len(parsed))
	}

	return &Result{
		Script:         script,
		Chapters:       parsed,
		Topic:          topic,
		TokensUsed:     gen.TokensUsed,
		GenerationTime: s.now(),
	}, nil
}
