package chain

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	llmctx "audiobook-ai-api/internal/domain/service"
	workflowprompt "audiobook-ai-api/internal/workflow/prompt"
	apperrors "audiobook-ai-api/pkg/errors"
)

type fakeModel struct {
	calls     int
	lastInput []*schema.Message
	lastOpts  *model.Options
	reply     string
	tokens    int
	err       error
}

func (m *fakeModel) Generate(_ context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.calls++
	m.lastInput = input
	m.lastOpts = model.GetCommonOptions(&model.Options{}, opts...)
	if m.err != nil {
		return nil, m.err
	}
	return &schema.Message{
		Role:         schema.Assistant,
		Content:      m.reply,
		ResponseMeta: &schema.ResponseMeta{Usage: &schema.TokenUsage{CompletionTokens: m.tokens}},
	}, nil
}

func (m *fakeModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

type fakeFactory struct {
	model      *fakeModel
	configured bool
}

func (f *fakeFactory) Get(_ context.Context, name string) (model.BaseChatModel, error) {
	if !f.configured {
		return nil, apperrors.NotConfigured(name)
	}
	return f.model, nil
}

func (f *fakeFactory) Configured(string) bool { return f.configured }

func (f *fakeFactory) Model(string) string { return "test-model" }

type memoryCache struct {
	data map[string][]byte
	err  error
}

func (c *memoryCache) GetOrLoad(ctx context.Context, key string, _ time.Duration, loader func(ctx context.Context) (any, error)) ([]byte, bool, error) {
	if c.err != nil {
		return nil, false, c.err
	}
	if v, ok := c.data[key]; ok {
		return v, true, nil
	}
	v, err := loader(ctx)
	if err != nil {
		return nil, false, err
	}
	raw := mustJSON(v)
	c.data[key] = raw
	return raw, false, nil
}

func mustJSON(v any) []byte {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return raw
}

type recordingRecorder struct {
	inputs []llmctx.LLMUsageInput
}

func (r *recordingRecorder) Record(_ context.Context, in llmctx.LLMUsageInput) {
	r.inputs = append(r.inputs, in)
}

func analysisInput() *TextInput {
	return &TextInput{
		Workflow:  "analyze",
		Provider:  "granite",
		PromptID:  workflowprompt.PromptAnalysisV1,
		Vars:      map[string]any{"text": "hello"},
		MaxTokens: 1000,
	}
}

func TestInvokeReturnsTextAndUsage(t *testing.T) {
	fm := &fakeModel{reply: "analysis", tokens: 7}
	rec := &recordingRecorder{}
	c := NewTextChain(&fakeFactory{model: fm, configured: true}, nil, rec)

	gen, err := c.Invoke(context.Background(), analysisInput())
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if gen.Text != "analysis" || gen.TokensUsed != 7 || gen.Provider != "granite" || gen.Model != "test-model" {
		t.Fatalf("unexpected generation: %+v", gen)
	}
	if fm.lastOpts.MaxTokens == nil || *fm.lastOpts.MaxTokens != 1000 {
		t.Fatalf("max tokens option not passed: %+v", fm.lastOpts)
	}
	if len(fm.lastInput) != 1 || fm.lastInput[0].Role != schema.User {
		t.Fatalf("unexpected prompt messages: %+v", fm.lastInput)
	}
	if len(rec.inputs) != 1 || rec.inputs[0].Workflow != "analyze" || rec.inputs[0].CompletionTokens != 7 {
		t.Fatalf("unexpected usage records: %+v", rec.inputs)
	}
}

func TestInvokeWithoutCredentialsMakesNoCall(t *testing.T) {
	fm := &fakeModel{}
	c := NewTextChain(&fakeFactory{model: fm}, nil, nil)

	_, err := c.Invoke(context.Background(), analysisInput())
	if !apperrors.IsCode(err, apperrors.CodeNotConfigured) {
		t.Fatalf("expected not configured, got %v", err)
	}
	if fm.calls != 0 {
		t.Fatalf("model called %d times", fm.calls)
	}
}

func TestInvokeWrapsUnknownModelErrors(t *testing.T) {
	fm := &fakeModel{err: errors.New("dial tcp: refused")}
	c := NewTextChain(&fakeFactory{model: fm, configured: true}, nil, nil)

	_, err := c.Invoke(context.Background(), analysisInput())
	if !apperrors.IsCode(err, apperrors.CodeTransportError) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestInvokeUsesCache(t *testing.T) {
	fm := &fakeModel{reply: "cached text", tokens: 3}
	cache := &memoryCache{data: map[string][]byte{}}
	c := NewTextChain(&fakeFactory{model: fm, configured: true}, nil, nil).WithCache(cache, time.Minute)

	first, err := c.Invoke(context.Background(), analysisInput())
	if err != nil || first.Cached {
		t.Fatalf("first = (%+v, %v)", first, err)
	}
	second, err := c.Invoke(context.Background(), analysisInput())
	if err != nil || !second.Cached || second.Text != "cached text" || second.TokensUsed != 3 {
		t.Fatalf("second = (%+v, %v)", second, err)
	}
	if fm.calls != 1 {
		t.Fatalf("model called %d times", fm.calls)
	}
}

func TestInvokeDoesNotCacheVendorErrors(t *testing.T) {
	fm := &fakeModel{err: apperrors.Vendor("granite", 503, "busy")}
	cache := &memoryCache{data: map[string][]byte{}}
	c := NewTextChain(&fakeFactory{model: fm, configured: true}, nil, nil).WithCache(cache, time.Minute)

	_, err := c.Invoke(context.Background(), analysisInput())
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeVendorError || appErr.UpstreamStatus != 503 {
		t.Fatalf("unexpected error: %+v", appErr)
	}
	if len(cache.data) != 0 {
		t.Fatal("vendor error was cached")
	}
}

func TestInvokeFallsBackWhenCacheFails(t *testing.T) {
	fm := &fakeModel{reply: "direct"}
	cache := &memoryCache{err: errors.New("redis: connection refused")}
	c := NewTextChain(&fakeFactory{model: fm, configured: true}, nil, nil).WithCache(cache, time.Minute)

	gen, err := c.Invoke(context.Background(), analysisInput())
	if err != nil || gen.Text != "direct" {
		t.Fatalf("Invoke = (%+v, %v)", gen, err)
	}
}

func TestGenerationKeyDependsOnMaxTokens(t *testing.T) {
	ctx := llmctx.WithWorkflowProvider(context.Background(), "script", "granite")
	msgs := []*schema.Message{schema.UserMessage("p")}
	if generationKey(ctx, "m", msgs, 10) == generationKey(ctx, "m", msgs, 11) {
		t.Fatal("max tokens not part of the key")
	}
	if generationKey(ctx, "m", msgs, 10) != generationKey(ctx, "m", msgs, 10) {
		t.Fatal("key is not deterministic")
	}
}
