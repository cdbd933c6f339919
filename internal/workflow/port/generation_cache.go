package port

import (
	"context"
	"time"
)

// GenerationCache 生成结果缓存（port），loader 的错误不得写入缓存
type GenerationCache interface {
	GetOrLoad(ctx context.Context, key string, ttl time.Duration, loader func(ctx context.Context) (any, error)) ([]byte, bool, error)
}
