// Package chain 组合提示词、模型与缓存完成一次文本生成
package chain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"audiobook-ai-api/internal/domain/entity"
	llmctx "audiobook-ai-api/internal/domain/service"
	workflowport "audiobook-ai-api/internal/workflow/port"
	workflowprompt "audiobook-ai-api/internal/workflow/prompt"
	apperrors "audiobook-ai-api/pkg/errors"
	"audiobook-ai-api/pkg/logger"
	"audiobook-ai-api/pkg/metrics"
)

const generationKeyPrefix = "gen:"

// TextInput 一次生成的输入
type TextInput struct {
	// Workflow 业务流程名，用于指标标签
	Workflow string
	Provider string
	PromptID workflowprompt.PromptID
	Vars     map[string]any
	// MaxTokens 为 0 时使用 provider 默认值
	MaxTokens int
}

// TextChain 渲染提示词并调用 ChatModel
type TextChain struct {
	factory  workflowport.ChatModelFactory
	prompts  *workflowprompt.Registry
	cache    workflowport.GenerationCache
	cacheTTL time.Duration
	recorder llmctx.LLMUsageRecorder
}

// NewTextChain 创建生成链，cache 与 recorder 可为空
func NewTextChain(factory workflowport.ChatModelFactory, prompts *workflowprompt.Registry, recorder llmctx.LLMUsageRecorder) *TextChain {
	if prompts == nil {
		prompts = workflowprompt.NewRegistry()
	}
	return &TextChain{
		factory:  factory,
		prompts:  prompts,
		recorder: recorder,
	}
}

// WithCache 启用生成缓存
func (c *TextChain) WithCache(cache workflowport.GenerationCache, ttl time.Duration) *TextChain {
	if cache != nil && ttl > 0 {
		c.cache = cache
		c.cacheTTL = ttl
	}
	return c
}

// Configured provider 是否可用
func (c *TextChain) Configured(provider string) bool {
	return c != nil && c.factory != nil && c.factory.Configured(provider)
}

// Invoke 执行生成；未配置凭据时返回 CodeNotConfigured 且不发起外部调用
func (c *TextChain) Invoke(ctx context.Context, in *TextInput) (*entity.Generation, error) {
	if c == nil || c.factory == nil {
		return nil, fmt.Errorf("llm factory not configured")
	}
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}

	provider := strings.TrimSpace(in.Provider)
	ctx = llmctx.WithWorkflowProvider(ctx, in.Workflow, provider)

	chatModel, err := c.factory.Get(ctx, provider)
	if err != nil {
		c.record(ctx, nil, err)
		return nil, err
	}

	msgs, err := c.prompts.Format(ctx, in.PromptID, in.Vars)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "failed to render prompt")
	}
	opts := buildModelOptions(in)

	if c.cache == nil {
		gen, err := c.generate(ctx, chatModel, msgs, opts)
		c.record(ctx, gen, err)
		return gen, err
	}
	return c.generateCached(ctx, chatModel, msgs, opts, in)
}

func (c *TextChain) generateCached(ctx context.Context, chatModel model.BaseChatModel, msgs []*schema.Message, opts []model.Option, in *TextInput) (*entity.Generation, error) {
	key := generationKey(ctx, c.factory.Model(llmctx.ProviderFromContext(ctx)), msgs, in.MaxTokens)

	raw, hit, err := c.cache.GetOrLoad(ctx, key, c.cacheTTL, func(ctx context.Context) (any, error) {
		gen, err := c.generate(ctx, chatModel, msgs, opts)
		c.record(ctx, gen, err)
		if err != nil {
			return nil, &loaderError{err: err}
		}
		return gen, nil
	})
	if err != nil {
		var le *loaderError
		if errors.As(err, &le) {
			return nil, le.err
		}
		// 缓存不可用时直接调用模型
		metrics.GenerationCacheTotal.WithLabelValues("error").Inc()
		logger.Warn(ctx, "generation cache unavailable", "error", err.Error())
		gen, err := c.generate(ctx, chatModel, msgs, opts)
		c.record(ctx, gen, err)
		return gen, err
	}

	var gen entity.Generation
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeCacheError, "corrupted generation cache entry")
	}
	if hit {
		gen.Cached = true
		metrics.GenerationCacheTotal.WithLabelValues("hit").Inc()
		c.record(ctx, &gen, nil)
	} else {
		metrics.GenerationCacheTotal.WithLabelValues("miss").Inc()
	}
	return &gen, nil
}

func (c *TextChain) generate(ctx context.Context, chatModel model.BaseChatModel, msgs []*schema.Message, opts []model.Option) (*entity.Generation, error) {
	provider := llmctx.ProviderFromContext(ctx)
	start := time.Now()
	outMsg, err := chatModel.Generate(ctx, msgs, opts...)
	if err != nil {
		if !apperrors.IsAppError(err) {
			err = apperrors.Transport(provider, err)
		}
		return nil, err
	}
	if outMsg == nil {
		return nil, apperrors.New(apperrors.CodeVendorError, "empty llm response")
	}

	gen := &entity.Generation{
		Text:     outMsg.Content,
		Provider: provider,
		Model:    c.factory.Model(provider),
		Duration: time.Since(start),
	}
	if outMsg.ResponseMeta != nil && outMsg.ResponseMeta.Usage != nil {
		gen.TokensUsed = outMsg.ResponseMeta.Usage.CompletionTokens
	}
	return gen, nil
}

func (c *TextChain) record(ctx context.Context, gen *entity.Generation, err error) {
	if c.recorder == nil {
		return
	}
	in := llmctx.LLMUsageInput{
		Workflow: llmctx.WorkflowFromContext(ctx),
		Provider: llmctx.ProviderFromContext(ctx),
		Err:      err,
	}
	if gen != nil {
		in.Model = gen.Model
		in.CompletionTokens = gen.TokensUsed
		in.Duration = gen.Duration
		in.Cached = gen.Cached
	}
	c.recorder.Record(ctx, in)
}

func buildModelOptions(in *TextInput) []model.Option {
	opts := make([]model.Option, 0, 1)
	if in.MaxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(in.MaxTokens))
	}
	return opts
}

// generationKey 由 provider、模型、提示词与生成长度决定
func generationKey(ctx context.Context, modelName string, msgs []*schema.Message, maxTokens int) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%d\x00", llmctx.ProviderFromContext(ctx), modelName, maxTokens)
	for _, m := range msgs {
		fmt.Fprintf(h, "%s\x00%s\x00", m.Role, m.Content)
	}
	return generationKeyPrefix + llmctx.ProviderFromContext(ctx) + ":" + hex.EncodeToString(h.Sum(nil))
}

// loaderError 区分模型错误与缓存自身的错误
type loaderError struct {
	err error
}

func (e *loaderError) Error() string { return e.err.Error() }

func (e *loaderError) Unwrap() error { return e.err }
