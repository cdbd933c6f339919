package prompt

import (
	"context"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"

	"audiobook-ai-api/internal/domain/entity"
)

func TestRewritePromptLayout(t *testing.T) {
	r := NewRegistry()
	msgs, err := r.Format(context.Background(), RewritePromptID(entity.ToneSuspenseful), map[string]any{"text": "The door opened."})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Role != schema.User {
		t.Fatalf("unexpected messages: %+v", msgs)
	}
	want := "Rewrite the following text in a suspenseful, dramatic tone that builds tension:\n\nText: The door opened.\n\nRewritten text:"
	if msgs[0].Content != want {
		t.Fatalf("content = %q", msgs[0].Content)
	}
}

func TestEveryPromptIDResolves(t *testing.T) {
	r := NewRegistry()
	vars := map[string]any{
		"text":        "sample",
		"text_sample": "sample",
		"topic":       "bees",
		"chapters":    3,
		"style":       "educational",
		"genre":       "general",
	}
	ids := []PromptID{
		PromptRewriteNeutralV1, PromptRewriteSuspensefulV1, PromptRewriteInspiringV1,
		PromptEnhanceImproveV1, PromptEnhanceSummarizeV1, PromptEnhanceExpandV1, PromptEnhanceChaptersV1,
		PromptScriptV1, PromptAnalysisV1, PromptVoicesV1,
	}
	for _, id := range ids {
		msgs, err := r.Format(context.Background(), id, vars)
		if err != nil {
			t.Fatalf("%s: %v", id, err)
		}
		if strings.Contains(msgs[0].Content, "{") {
			t.Fatalf("%s left a placeholder: %q", id, msgs[0].Content)
		}
	}
}

func TestScriptPromptMentionsTopicAndChapters(t *testing.T) {
	msgs, err := NewRegistry().Format(context.Background(), PromptScriptV1, map[string]any{
		"topic":    "Ocean tides",
		"chapters": 4,
		"style":    "narrative",
	})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	got := msgs[0].Content
	if !strings.HasPrefix(got, `Create a detailed audiobook script about "Ocean tides" with 4 chapters.`) {
		t.Fatalf("unexpected prefix: %q", got)
	}
	if !strings.HasSuffix(got, "Audiobook Script:") {
		t.Fatalf("unexpected suffix: %q", got)
	}
}

func TestUnknownPromptID(t *testing.T) {
	if _, err := NewRegistry().ChatTemplate("nope"); err == nil {
		t.Fatal("expected error for unknown prompt id")
	}
}

func TestPromptIDFallbacks(t *testing.T) {
	if RewritePromptID(entity.Tone("angry")) != PromptRewriteNeutralV1 {
		t.Fatal("unknown tone should use neutral prompt")
	}
	if EnhancePromptID(entity.EnhancementType("x")) != PromptEnhanceImproveV1 {
		t.Fatal("unknown enhancement should use improve prompt")
	}
}
