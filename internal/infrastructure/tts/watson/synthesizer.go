// Package watson 封装 IBM Watson Text-to-Speech 接口
package watson

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"audiobook-ai-api/internal/config"
	"audiobook-ai-api/internal/workflow/port"
	apperrors "audiobook-ai-api/pkg/errors"
	"audiobook-ai-api/pkg/logger"
	"audiobook-ai-api/pkg/tracer"
)

// VendorName 错误信息中的厂商名
const VendorName = "watson tts"

const (
	defaultTimeout    = 30 * time.Second
	defaultAccept     = "audio/mp3"
	maxErrorBodyBytes = 64 << 10
	maxAudioBytes     = 64 << 20
)

type synthesizeRequest struct {
	Text   string `json:"text"`
	Voice  string `json:"voice"`
	Accept string `json:"accept"`
}

// Synthesizer Watson TTS 客户端
type Synthesizer struct {
	cfg    config.WatsonTTSConfig
	client *http.Client
}

var _ port.Synthesizer = (*Synthesizer)(nil)

// NewSynthesizer 创建 Watson TTS 客户端，client 为空时按配置超时新建
func NewSynthesizer(cfg config.WatsonTTSConfig, client *http.Client) *Synthesizer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Accept == "" {
		cfg.Accept = defaultAccept
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Synthesizer{cfg: cfg, client: client}
}

// Configured 是否配置了 API Key
func (s *Synthesizer) Configured() bool {
	return s != nil && s.cfg.Configured()
}

// Synthesize 合成语音并返回原始音频
func (s *Synthesizer) Synthesize(ctx context.Context, input string, options *port.SynthesizeOptions) (*port.Synthesis, error) {
	if !s.Configured() {
		return nil, apperrors.NotConfigured(VendorName)
	}
	if options == nil {
		options = &port.SynthesizeOptions{}
	}

	ctx, span := tracer.Start(ctx, "tts.watson.synthesize")
	defer span.End()
	span.SetAttributes(
		attribute.String("tts.voice", options.Voice),
		attribute.Int("tts.text_length", len(input)),
	)

	audio, err := s.post(ctx, input, options)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("tts.audio_bytes", len(audio.Content)))
	return audio, nil
}

func (s *Synthesizer) post(ctx context.Context, input string, options *port.SynthesizeOptions) (*port.Synthesis, error) {
	body, err := json.Marshal(synthesizeRequest{
		Text:   input,
		Voice:  options.Voice,
		Accept: s.cfg.Accept,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "failed to encode synthesis request")
	}

	httpReq, err := http.NewRequestWithContext(context.WithoutCancel(ctx), http.MethodPost, s.endpoint(options.Speed), bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.Transport(VendorName, err)
	}
	httpReq.SetBasicAuth("apikey", s.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", s.cfg.Accept)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		logger.Error(ctx, "synthesis request failed", err)
		return nil, apperrors.Transport(VendorName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		logger.Warn(ctx, "synthesis api returned error", "status", resp.StatusCode, "body", string(raw))
		return nil, apperrors.Vendor(VendorName, resp.StatusCode, string(raw))
	}

	audio, err := readAudio(resp.Body, maxAudioBytes)
	if err != nil {
		return nil, err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = s.cfg.Accept
	}
	return &port.Synthesis{Content: audio, ContentType: contentType}, nil
}

// readAudio 超过 limit 时报错，不截断
func readAudio(r io.Reader, limit int64) ([]byte, error) {
	audio, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, apperrors.Transport(VendorName, err)
	}
	if int64(len(audio)) > limit {
		return nil, apperrors.New(apperrors.CodeVendorError, fmt.Sprintf("%s audio exceeds %d bytes", VendorName, limit))
	}
	return audio, nil
}

// endpoint 配置了实例 ID 时使用实例路径；语速非 1.0 时追加 rate_percentage
func (s *Synthesizer) endpoint(speed float64) string {
	base := strings.TrimRight(s.cfg.BaseURL, "/")
	if id := strings.TrimSpace(s.cfg.InstanceID); id != "" {
		base += "/instances/" + url.PathEscape(id)
	}
	endpoint := base + "/v1/synthesize"

	if rate, ok := ratePercentage(speed); ok {
		endpoint += "?rate_percentage=" + strconv.Itoa(rate)
	}
	return endpoint
}

// ratePercentage 把语速倍率换算为 Watson 的 rate_percentage，范围 [-100, 100]
func ratePercentage(speed float64) (int, bool) {
	if speed <= 0 || speed == 1 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return 0, false
	}
	rate := int(math.Round((speed - 1) * 100))
	rate = max(-100, min(100, rate))
	if rate == 0 {
		return 0, false
	}
	return rate, true
}
