package port

import "context"

// SynthesizeOptions 语音合成参数
type SynthesizeOptions struct {
	// Voice 厂商音色名，如 en-US_LisaV3Voice
	Voice string
	// Speed 语速倍率，1.0 为正常
	Speed float64
}

// Synthesis 合成结果
type Synthesis struct {
	Content     []byte
	ContentType string
}

// Synthesizer 定义应用层对 TTS 服务的最小依赖（port）。
type Synthesizer interface {
	Synthesize(ctx context.Context, input string, options *SynthesizeOptions) (*Synthesis, error)
	Configured() bool
}
