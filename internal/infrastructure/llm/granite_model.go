package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	apperrors "audiobook-ai-api/pkg/errors"
	"audiobook-ai-api/pkg/logger"
	"audiobook-ai-api/pkg/tracer"
)

const (
	defaultGraniteTimeout = 30 * time.Second
	maxErrorBodyBytes     = 64 << 10
)

// GraniteConfig Granite/watsonx 文本生成接口配置
type GraniteConfig struct {
	// Name 用于错误信息和日志，如 granite、watsonx
	Name           string
	APIKey         string
	BaseURL        string
	GenerationPath string
	Model          string
	ProjectID      string
	MaxTokens      int
	Temperature    float64
	TopP           float64
	TopK           int
	Timeout        time.Duration
	HTTPClient     *http.Client
}

// GraniteChatModel 以 Eino ChatModel 的形式封装 Granite 文本生成接口
type GraniteChatModel struct {
	cfg    GraniteConfig
	client *http.Client
}

var _ model.BaseChatModel = (*GraniteChatModel)(nil)

type graniteParameters struct {
	MaxNewTokens int     `json:"max_new_tokens"`
	Temperature  float64 `json:"temperature"`
	TopP         float64 `json:"top_p,omitempty"`
	TopK         int     `json:"top_k,omitempty"`
}

type graniteRequest struct {
	ModelID    string            `json:"model_id"`
	Input      string            `json:"input"`
	Parameters graniteParameters `json:"parameters"`
	ProjectID  string            `json:"project_id,omitempty"`
}

type graniteResult struct {
	GeneratedText string `json:"generated_text"`
	TokenCount    int    `json:"token_count"`
	StopReason    string `json:"stop_reason,omitempty"`
}

type graniteResponse struct {
	Results []graniteResult `json:"results"`
}

// NewGraniteChatModel 创建 Granite ChatModel
func NewGraniteChatModel(cfg GraniteConfig) (*GraniteChatModel, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, apperrors.NotConfigured(cfg.Name)
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("%s base url is required", cfg.Name)
	}
	if cfg.GenerationPath == "" {
		cfg.GenerationPath = "/text/generation"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultGraniteTimeout
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &GraniteChatModel{cfg: cfg, client: client}, nil
}

// Generate 发起一次同步生成
func (m *GraniteChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	options := model.GetCommonOptions(&model.Options{}, opts...)

	req := graniteRequest{
		ModelID: m.cfg.Model,
		Input:   joinMessages(input),
		Parameters: graniteParameters{
			MaxNewTokens: m.cfg.MaxTokens,
			Temperature:  m.cfg.Temperature,
			TopP:         m.cfg.TopP,
			TopK:         m.cfg.TopK,
		},
		ProjectID: m.cfg.ProjectID,
	}
	if options.Model != nil && *options.Model != "" {
		req.ModelID = *options.Model
	}
	if options.MaxTokens != nil && *options.MaxTokens > 0 {
		req.Parameters.MaxNewTokens = *options.MaxTokens
	}
	if options.Temperature != nil {
		req.Parameters.Temperature = float32ToFloat64(*options.Temperature)
	}
	if options.TopP != nil {
		req.Parameters.TopP = float32ToFloat64(*options.TopP)
	}

	ctx, span := tracer.Start(ctx, "llm."+m.cfg.Name+".generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.model", req.ModelID),
		attribute.Int("llm.max_new_tokens", req.Parameters.MaxNewTokens),
	)

	result, err := m.post(ctx, &req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("llm.token_count", result.TokenCount))

	return &schema.Message{
		Role:    schema.Assistant,
		Content: result.GeneratedText,
		ResponseMeta: &schema.ResponseMeta{
			FinishReason: result.StopReason,
			Usage: &schema.TokenUsage{
				CompletionTokens: result.TokenCount,
				TotalTokens:      result.TokenCount,
			},
		},
	}, nil
}

// Stream 接口不支持流式输出，返回只包含一条消息的流
func (m *GraniteChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

// post 单次请求，不重试；请求脱离调用方取消，由 client 超时兜底
func (m *GraniteChatModel) post(ctx context.Context, payload *graniteRequest) (*graniteResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "failed to encode generation request")
	}

	url := strings.TrimRight(m.cfg.BaseURL, "/") + m.cfg.GenerationPath
	httpReq, err := http.NewRequestWithContext(context.WithoutCancel(ctx), http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.Transport(m.cfg.Name, err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+m.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(httpReq)
	if err != nil {
		logger.Error(ctx, "generation request failed", err, "provider", m.cfg.Name)
		return nil, apperrors.Transport(m.cfg.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		logger.Warn(ctx, "generation api returned error",
			"provider", m.cfg.Name,
			"status", resp.StatusCode,
			"body", string(raw),
		)
		return nil, apperrors.Vendor(m.cfg.Name, resp.StatusCode, string(raw))
	}

	var out graniteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeVendorError, m.cfg.Name+" returned a malformed response")
	}
	if len(out.Results) == 0 {
		return &graniteResult{}, nil
	}
	return &out.Results[0], nil
}

// joinMessages 厂商接口只接收一段文本
func joinMessages(msgs []*schema.Message) string {
	parts := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		if msg == nil || msg.Content == "" {
			continue
		}
		parts = append(parts, msg.Content)
	}
	return strings.Join(parts, "\n\n")
}

// float32ToFloat64 保留 4 位小数，避免 0.7 变成 0.699999988
func float32ToFloat64(f float32) float64 {
	return math.Round(float64(f)*1e4) / 1e4
}
