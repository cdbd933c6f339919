// Package prompt 管理内嵌的提示词模板
package prompt

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"sync"

	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"audiobook-ai-api/internal/domain/entity"
)

//go:embed templates/*.txt
var templatesFS embed.FS

type PromptID string

const (
	PromptRewriteNeutralV1     PromptID = "rewrite_neutral_v1"
	PromptRewriteSuspensefulV1 PromptID = "rewrite_suspenseful_v1"
	PromptRewriteInspiringV1   PromptID = "rewrite_inspiring_v1"
	PromptEnhanceImproveV1     PromptID = "enhance_improve_v1"
	PromptEnhanceSummarizeV1   PromptID = "enhance_summarize_v1"
	PromptEnhanceExpandV1      PromptID = "enhance_expand_v1"
	PromptEnhanceChaptersV1    PromptID = "enhance_chapters_v1"
	PromptScriptV1             PromptID = "script_v1"
	PromptAnalysisV1           PromptID = "analysis_v1"
	PromptVoicesV1             PromptID = "voices_v1"
)

// Registry 按 PromptID 懒加载并缓存 ChatTemplate
type Registry struct {
	mu    sync.RWMutex
	cache map[PromptID]einoprompt.ChatTemplate
}

func NewRegistry() *Registry {
	return &Registry{
		cache: make(map[PromptID]einoprompt.ChatTemplate),
	}
}

func (r *Registry) ChatTemplate(id PromptID) (einoprompt.ChatTemplate, error) {
	if r == nil {
		return nil, fmt.Errorf("prompt registry is nil")
	}

	r.mu.RLock()
	if tpl, ok := r.cache[id]; ok {
		r.mu.RUnlock()
		return tpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if tpl, ok := r.cache[id]; ok {
		return tpl, nil
	}

	userPath, err := resolvePromptFile(id)
	if err != nil {
		return nil, err
	}
	user, err := readEmbeddedText(userPath)
	if err != nil {
		return nil, err
	}

	// 厂商接口只接收单段 input，模板只包含一条用户消息
	tpl := einoprompt.FromMessages(
		schema.FString,
		schema.UserMessage(user),
	)
	r.cache[id] = tpl
	return tpl, nil
}

// Format 渲染模板
func (r *Registry) Format(ctx context.Context, id PromptID, vars map[string]any) ([]*schema.Message, error) {
	tpl, err := r.ChatTemplate(id)
	if err != nil {
		return nil, err
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return nil, fmt.Errorf("format prompt %s: %w", id, err)
	}
	return msgs, nil
}

// RewritePromptID 语气对应的改写模板
func RewritePromptID(tone entity.Tone) PromptID {
	switch tone {
	case entity.ToneSuspenseful:
		return PromptRewriteSuspensefulV1
	case entity.ToneInspiring:
		return PromptRewriteInspiringV1
	default:
		return PromptRewriteNeutralV1
	}
}

// EnhancePromptID 增强类型对应的模板
func EnhancePromptID(t entity.EnhancementType) PromptID {
	switch t {
	case entity.EnhanceSummarize:
		return PromptEnhanceSummarizeV1
	case entity.EnhanceExpand:
		return PromptEnhanceExpandV1
	case entity.EnhanceChapters:
		return PromptEnhanceChaptersV1
	default:
		return PromptEnhanceImproveV1
	}
}

func resolvePromptFile(id PromptID) (string, error) {
	switch id {
	case PromptRewriteNeutralV1, PromptRewriteSuspensefulV1, PromptRewriteInspiringV1,
		PromptEnhanceImproveV1, PromptEnhanceSummarizeV1, PromptEnhanceExpandV1, PromptEnhanceChaptersV1,
		PromptScriptV1, PromptAnalysisV1, PromptVoicesV1:
		return "templates/" + string(id) + ".user.txt", nil
	default:
		return "", fmt.Errorf("unknown prompt id: %s", id)
	}
}

func readEmbeddedText(path string) (string, error) {
	b, err := templatesFS.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
