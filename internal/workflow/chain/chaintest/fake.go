// Package chaintest 提供测试用的 ChatModel 与工厂
package chaintest

import (
	"context"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"audiobook-ai-api/internal/workflow/chain"
	apperrors "audiobook-ai-api/pkg/errors"
)

// Model 记录调用并返回固定结果
type Model struct {
	mu        sync.Mutex
	Reply     string
	Tokens    int
	Err       error
	Calls     int
	LastInput []*schema.Message
	LastOpts  *model.Options
}

func (m *Model) Generate(_ context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	m.LastInput = input
	m.LastOpts = model.GetCommonOptions(&model.Options{}, opts...)
	if m.Err != nil {
		return nil, m.Err
	}
	return &schema.Message{
		Role:         schema.Assistant,
		Content:      m.Reply,
		ResponseMeta: &schema.ResponseMeta{Usage: &schema.TokenUsage{CompletionTokens: m.Tokens, TotalTokens: m.Tokens}},
	}, nil
}

func (m *Model) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

// Prompt 最近一次调用的提示词
func (m *Model) Prompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.LastInput) == 0 {
		return ""
	}
	return m.LastInput[0].Content
}

// MaxTokens 最近一次调用传入的 max tokens，未传入时为 0
func (m *Model) MaxTokens() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LastOpts == nil || m.LastOpts.MaxTokens == nil {
		return 0
	}
	return *m.LastOpts.MaxTokens
}

// Factory 只有列出的 provider 视为已配置
type Factory struct {
	chatModel  *Model
	configured map[string]bool
}

// NewFactory 创建工厂，providers 为已配置的 provider
func NewFactory(m *Model, providers ...string) *Factory {
	configured := make(map[string]bool, len(providers))
	for _, p := range providers {
		configured[p] = true
	}
	return &Factory{chatModel: m, configured: configured}
}

func (f *Factory) Get(_ context.Context, name string) (model.BaseChatModel, error) {
	if !f.configured[name] {
		return nil, apperrors.NotConfigured(name)
	}
	return f.chatModel, nil
}

func (f *Factory) Configured(name string) bool {
	return f.configured[name]
}

func (f *Factory) Model(string) string {
	return "fake-model"
}

// NewChain 用假模型构造 TextChain
func NewChain(m *Model, providers ...string) *chain.TextChain {
	return chain.NewTextChain(NewFactory(m, providers...), nil, nil)
}
