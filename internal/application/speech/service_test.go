package speech

import (
	"context"
	"strings"
	"testing"

	"audiobook-ai-api/internal/config"
	"audiobook-ai-api/internal/workflow/port"
	apperrors "audiobook-ai-api/pkg/errors"
)

type fakeSynth struct {
	configured bool
	out        *port.Synthesis
	err        error
	calls      int
	lastInput  string
	lastOpts   *port.SynthesizeOptions
}

func (f *fakeSynth) Synthesize(_ context.Context, input string, opts *port.SynthesizeOptions) (*port.Synthesis, error) {
	f.calls++
	f.lastInput = input
	f.lastOpts = opts
	return f.out, f.err
}

func (f *fakeSynth) Configured() bool { return f.configured }

func ptr(f float64) *float64 { return &f }

func TestGenerateSimulated(t *testing.T) {
	synth := &fakeSynth{}
	svc := NewService(synth, &config.Config{})

	res, err := svc.Generate(context.Background(), "Hello", "lisa", ptr(1.0))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.AudioURL != "/api/audio/simulated_lisa_5.mp3" || res.Mode != ModeSimulated {
		t.Fatalf("unexpected result: %+v", res)
	}
	if synth.calls != 0 {
		t.Fatalf("synthesizer called %d times", synth.calls)
	}
}

func TestGenerateSimulatedCountsCodePoints(t *testing.T) {
	svc := NewService(&fakeSynth{}, &config.Config{})
	res, err := svc.Generate(context.Background(), "héllo wörld", "", nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.AudioURL != "/api/audio/simulated_lisa_11.mp3" {
		t.Fatalf("audio url = %s", res.AudioURL)
	}
}

func TestGenerateValidation(t *testing.T) {
	svc := NewService(&fakeSynth{}, &config.Config{})
	cases := []struct {
		name  string
		text  string
		voice string
		speed *float64
	}{
		{"empty text", "", "lisa", nil},
		{"unknown voice", "Hello", "bob", nil},
		{"zero speed", "Hello", "lisa", ptr(0)},
		{"negative speed", "Hello", "lisa", ptr(-1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Generate(context.Background(), tc.text, tc.voice, tc.speed)
			if !apperrors.IsCode(err, apperrors.CodeInvalidParam) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestGenerateVendor(t *testing.T) {
	synth := &fakeSynth{configured: true, out: &port.Synthesis{Content: []byte("ID3"), ContentType: "audio/mpeg"}}
	svc := NewService(synth, &config.Config{})

	res, err := svc.Generate(context.Background(), "Hello", "michael", ptr(1.25))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.AudioURL != "data:audio/mpeg;base64,SUQz" || res.Mode != ModeVendor {
		t.Fatalf("unexpected result: %+v", res)
	}
	if synth.lastOpts.Voice != "en-US_MichaelV3Voice" || synth.lastOpts.Speed != 1.25 {
		t.Fatalf("unexpected options: %+v", synth.lastOpts)
	}
}

func TestGenerateVendorError(t *testing.T) {
	synth := &fakeSynth{configured: true, err: apperrors.Vendor("watson tts", 503, "busy")}
	svc := NewService(synth, &config.Config{})

	_, err := svc.Generate(context.Background(), "Hello", "allison", nil)
	appErr := apperrors.AsAppError(err)
	if appErr.HTTPStatus != 500 || !strings.Contains(appErr.Message, "503") {
		t.Fatalf("unexpected error: %+v", appErr)
	}
}

func TestGenerateForcedSimulation(t *testing.T) {
	synth := &fakeSynth{configured: true}
	cfg := &config.Config{}
	cfg.Features.Simulation.Force = true

	res, err := NewService(synth, cfg).Generate(context.Background(), "Hi", "allison", nil)
	if err != nil || res.AudioURL != "/api/audio/simulated_allison_2.mp3" {
		t.Fatalf("Generate = (%+v, %v)", res, err)
	}
	if synth.calls != 0 {
		t.Fatalf("synthesizer called %d times", synth.calls)
	}
}

func TestGenerateRejectsUnknownVoiceInSimulation(t *testing.T) {
	cfg := &config.Config{}
	cfg.Features.Simulation.Force = true
	svc := NewService(&fakeSynth{configured: true}, cfg)

	_, err := svc.Generate(context.Background(), "Hello", "bob", nil)
	appErr := apperrors.AsAppError(err)
	if appErr.HTTPStatus != 400 || !strings.Contains(appErr.Message, "bob") {
		t.Fatalf("unexpected error: %+v", appErr)
	}
}
