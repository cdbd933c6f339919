// Package port 定义应用层对外部能力的最小依赖
package port

import (
	"context"

	"github.com/cloudwego/eino/components/model"
)

// ChatModelFactory 定义应用层对 LLM ChatModel 的最小依赖（port）。
type ChatModelFactory interface {
	Get(ctx context.Context, name string) (model.BaseChatModel, error)
	// Configured 返回 provider 是否配置了凭据，未配置时调用方可降级为模拟
	Configured(name string) bool
	// Model 返回 provider 的模型名，用于缓存键和指标
	Model(name string) string
}
