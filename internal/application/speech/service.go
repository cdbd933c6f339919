// Package speech 实现文本转语音
package speech

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"audiobook-ai-api/internal/config"
	"audiobook-ai-api/internal/domain/entity"
	"audiobook-ai-api/internal/workflow/port"
	apperrors "audiobook-ai-api/pkg/errors"
	"audiobook-ai-api/pkg/logger"
	"audiobook-ai-api/pkg/metrics"
)

// 合成模式
const (
	ModeSimulated = "simulated"
	ModeVendor    = "vendor"
)

// DefaultSpeed 默认语速
const DefaultSpeed = 1.0

// Result 合成结果
type Result struct {
	AudioURL string
	Voice    entity.Voice
	Mode     string
}

// Service 语音合成服务
type Service struct {
	synth    port.Synthesizer
	simulate bool
}

// NewService 创建语音合成服务
func NewService(synth port.Synthesizer, cfg *config.Config) *Service {
	return &Service{
		synth:    synth,
		simulate: cfg.Features.Simulation.Force,
	}
}

// Generate 合成语音；TTS 未配置或强制模拟时返回占位地址
func (s *Service) Generate(ctx context.Context, text, voice string, speed *float64) (*Result, error) {
	if text == "" {
		return nil, apperrors.Validation("No text provided")
	}
	v, ok := entity.ParseVoice(voice)
	if !ok {
		return nil, apperrors.Validation(fmt.Sprintf("unsupported voice: %s", voice))
	}
	rate := DefaultSpeed
	if speed != nil {
		rate = *speed
	}
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil, apperrors.Validation("speed must be a positive number")
	}

	if s.simulate || s.synth == nil || !s.synth.Configured() {
		metrics.TTSCallTotal.WithLabelValues(ModeSimulated, string(v), "success").Inc()
		return &Result{
			AudioURL: SimulatedAudioURL(v, text),
			Voice:    v,
			Mode:     ModeSimulated,
		}, nil
	}

	start := time.Now()
	audio, err := s.synth.Synthesize(ctx, text, &port.SynthesizeOptions{
		Voice: v.WatsonName(),
		Speed: rate,
	})
	metrics.TTSCallDuration.WithLabelValues(string(v)).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.TTSCallTotal.WithLabelValues(ModeVendor, string(v), statusOf(err)).Inc()
		logger.Error(ctx, "speech synthesis failed", err, "voice", string(v))
		return nil, err
	}
	metrics.TTSCallTotal.WithLabelValues(ModeVendor, string(v), "success").Inc()
	metrics.TTSAudioBytes.Observe(float64(len(audio.Content)))

	return &Result{
		AudioURL: DataURL(audio),
		Voice:    v,
		Mode:     ModeVendor,
	}, nil
}

// SimulatedAudioURL 模拟模式下的占位音频地址，长度按码点计算
func SimulatedAudioURL(v entity.Voice, text string) string {
	return fmt.Sprintf("/api/audio/simulated_%s_%d.mp3", v, utf8.RuneCountInString(text))
}

// DataURL 把音频内联为 data URL
func DataURL(audio *port.Synthesis) string {
	contentType := audio.ContentType
	if contentType == "" {
		contentType = "audio/mp3"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(audio.Content)
}

func statusOf(err error) string {
	switch apperrors.AsAppError(err).Code {
	case apperrors.CodeNotConfigured:
		return "not_configured"
	case apperrors.CodeVendorError:
		return "vendor_error"
	case apperrors.CodeTransportError:
		return "transport_error"
	default:
		return "error"
	}
}
