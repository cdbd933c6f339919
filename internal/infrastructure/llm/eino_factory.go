// Package llm 提供文本生成模型的 Eino 适配
package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"audiobook-ai-api/internal/config"
	apperrors "audiobook-ai-api/pkg/errors"
)

// EinoFactory 管理多个 Eino ChatModel 客户端实例
type EinoFactory struct {
	config     *config.LLMConfig
	httpClient *http.Client
	models     map[string]model.BaseChatModel
	mu         sync.RWMutex
}

// NewEinoFactory 创建 Eino LLM 工厂
func NewEinoFactory(cfg *config.Config) *EinoFactory {
	return &EinoFactory{
		config: &cfg.LLM,
		models: make(map[string]model.BaseChatModel),
	}
}

// WithHTTPClient 指定 Granite 模型使用的 HTTP 客户端
func (f *EinoFactory) WithHTTPClient(c *http.Client) *EinoFactory {
	f.httpClient = c
	return f
}

// Configured 指定 provider 是否存在且配置了 API Key
func (f *EinoFactory) Configured(name string) bool {
	p, ok := f.config.Provider(f.resolve(name))
	return ok && p.Configured()
}

// Model 返回 provider 配置的模型名
func (f *EinoFactory) Model(name string) string {
	p, _ := f.config.Provider(f.resolve(name))
	return p.Model
}

// Get 获取指定名称的 ChatModel，如果未指定则返回默认客户端
// 未配置 API Key 时返回 CodeNotConfigured 错误，不缓存
func (f *EinoFactory) Get(ctx context.Context, name string) (model.BaseChatModel, error) {
	name = f.resolve(name)

	f.mu.RLock()
	m, ok := f.models[name]
	f.mu.RUnlock()
	if ok {
		return m, nil
	}

	// 惰性加载
	f.mu.Lock()
	defer f.mu.Unlock()

	// 再次检查防止竞态
	if m, ok = f.models[name]; ok {
		return m, nil
	}

	providerCfg, ok := f.config.Provider(name)
	if !ok {
		return nil, apperrors.New(apperrors.CodeInternalError, fmt.Sprintf("provider %s not found in LLM config", name))
	}
	if !providerCfg.Configured() {
		return nil, apperrors.NotConfigured(name)
	}

	chatModel, err := f.build(ctx, name, providerCfg)
	if err != nil {
		return nil, err
	}

	f.models[name] = chatModel
	return chatModel, nil
}

func (f *EinoFactory) resolve(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return f.config.DefaultProvider
	}
	return name
}

func (f *EinoFactory) build(ctx context.Context, name string, p config.ProviderConfig) (model.BaseChatModel, error) {
	switch strings.ToLower(strings.TrimSpace(p.Kind)) {
	case "", config.KindGranite:
		chatModel, err := NewGraniteChatModel(GraniteConfig{
			Name:           name,
			APIKey:         p.APIKey,
			BaseURL:        p.BaseURL,
			GenerationPath: p.GenerationPath,
			Model:          p.Model,
			ProjectID:      p.ProjectID,
			MaxTokens:      p.MaxTokens,
			Temperature:    p.Temperature,
			TopP:           p.TopP,
			TopK:           p.TopK,
			Timeout:        p.Timeout,
			HTTPClient:     f.httpClient,
		})
		if err != nil {
			return nil, err
		}
		return chatModel, nil
	case config.KindOpenAI:
		// OpenAI 兼容接口
		chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:      p.APIKey,
			BaseURL:     p.BaseURL,
			Model:       p.Model,
			MaxTokens:   ptrInt(p.MaxTokens),
			Temperature: ptrFloat32(float32(p.Temperature)),
			Timeout:     p.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create eino chat model for %s: %w", name, err)
		}
		return chatModel, nil
	default:
		return nil, apperrors.New(apperrors.CodeInternalError, fmt.Sprintf("unsupported provider kind %q for %s", p.Kind, name))
	}
}

func ptrFloat32(f float32) *float32 {
	return &f
}

func ptrInt(i int) *int {
	if i <= 0 {
		return nil
	}
	return &i
}
