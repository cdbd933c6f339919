//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"audiobook-ai-api/internal/application/analysis"
	"audiobook-ai-api/internal/application/enhance"
	"audiobook-ai-api/internal/application/rewrite"
	"audiobook-ai-api/internal/application/script"
	"audiobook-ai-api/internal/application/speech"
	"audiobook-ai-api/internal/application/usage"
	"audiobook-ai-api/internal/application/voice"
	"audiobook-ai-api/internal/config"
	llmctx "audiobook-ai-api/internal/domain/service"
	"audiobook-ai-api/internal/infrastructure/llm"
	"audiobook-ai-api/internal/interfaces/http/handler"
	"audiobook-ai-api/internal/interfaces/http/router"
	"audiobook-ai-api/internal/workflow/port"
	workflowprompt "audiobook-ai-api/internal/workflow/prompt"
)

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		RedisSet,
		LLMSet,
		SpeechSet,
		ServiceSet,
		RouterSet,
	)
	return nil, nil, nil
}

// RedisSet 可选 Redis（未启用或不可达时禁用缓存与限流）
var RedisSet = wire.NewSet(
	ProvideRedisClientOptional,
	ProvideGenerationCache,
	ProvideRateLimiter,
)

// LLMSet 文本生成链
var LLMSet = wire.NewSet(
	llm.NewEinoFactory,
	wire.Bind(new(port.ChatModelFactory), new(*llm.EinoFactory)),
	workflowprompt.NewRegistry,
	usage.NewRecorder,
	wire.Bind(new(llmctx.LLMUsageRecorder), new(*usage.Recorder)),
	ProvideTextChain,
)

// SpeechSet 语音合成
var SpeechSet = wire.NewSet(
	ProvideSynthesizer,
)

// ServiceSet 应用服务
var ServiceSet = wire.NewSet(
	rewrite.NewService,
	speech.NewService,
	enhance.NewService,
	script.NewService,
	analysis.NewService,
	voice.NewService,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	handler.NewHealthHandler,
	handler.NewStaticHandler,
	handler.NewAudiobookHandler,
	handler.NewGraniteHandler,
	wire.Struct(new(router.RouterHandlers), "*"),
	router.NewWithDeps,
)
