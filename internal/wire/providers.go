package wire

import (
	"context"

	"audiobook-ai-api/internal/config"
	llmctx "audiobook-ai-api/internal/domain/service"
	"audiobook-ai-api/internal/infrastructure/persistence/redis"
	"audiobook-ai-api/internal/infrastructure/tts/watson"
	"audiobook-ai-api/internal/interfaces/http/middleware"
	"audiobook-ai-api/internal/workflow/chain"
	"audiobook-ai-api/internal/workflow/port"
	workflowprompt "audiobook-ai-api/internal/workflow/prompt"
	"audiobook-ai-api/pkg/logger"
)

// ProvideRedisClientOptional 未启用时返回 nil；不可达时告警并返回 nil，不阻塞启动
func ProvideRedisClientOptional(ctx context.Context, cfg *config.Config) (*redis.Client, func(), error) {
	if !cfg.Cache.Redis.Enabled {
		return nil, func() {}, nil
	}
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		logger.Warn(ctx, "redis not available, generation cache and rate limiting disabled", "error", err.Error())
		return nil, func() {}, nil
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideGenerationCache Redis 不可用时返回 nil 接口
func ProvideGenerationCache(client *redis.Client) port.GenerationCache {
	if client == nil {
		return nil
	}
	return redis.NewCache(client)
}

// ProvideRateLimiter Redis 不可用时返回 nil 接口
func ProvideRateLimiter(client *redis.Client) middleware.RateLimiter {
	if client == nil {
		return nil
	}
	return redis.NewRateLimiter(client)
}

// ProvideTextChain 创建生成链并按配置启用缓存
func ProvideTextChain(cfg *config.Config, factory port.ChatModelFactory, prompts *workflowprompt.Registry, recorder llmctx.LLMUsageRecorder, cache port.GenerationCache) *chain.TextChain {
	return chain.NewTextChain(factory, prompts, recorder).WithCache(cache, cfg.Cache.GenerationTTL)
}

// ProvideSynthesizer 创建 Watson TTS 客户端
func ProvideSynthesizer(cfg *config.Config) port.Synthesizer {
	return watson.NewSynthesizer(cfg.Speech.Watson, nil)
}
