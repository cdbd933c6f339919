package analysis

import (
	"context"
	"strings"
	"testing"

	"audiobook-ai-api/internal/config"
	"audiobook-ai-api/internal/workflow/chain/chaintest"
	apperrors "audiobook-ai-api/pkg/errors"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestEstimate(t *testing.T) {
	cases := []struct {
		name string
		text string
		want Metrics
	}{
		{"empty", "", Metrics{}},
		{"whitespace only", " \n\t ", Metrics{CharacterCount: 4}},
		{"300 words", words(300), Metrics{WordCount: 300, CharacterCount: 1499, EstimatedMinutes: 2, EstimatedHours: 0.0}},
		{"half rounds to even", words(75), Metrics{WordCount: 75, CharacterCount: 374, EstimatedMinutes: 0}},
		{"one and a half rounds up to even", words(225), Metrics{WordCount: 225, CharacterCount: 1124, EstimatedMinutes: 2}},
		{"hours", words(9000), Metrics{WordCount: 9000, CharacterCount: 44999, EstimatedMinutes: 60, EstimatedHours: 1.0}},
		{"code points", "héllo  wörld", Metrics{WordCount: 2, CharacterCount: 12}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Estimate(tc.text); got != tc.want {
				t.Fatalf("Estimate() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestEstimateHoursOneDecimal(t *testing.T) {
	// 13500 词 = 90 分钟 = 1.5 小时
	if got := Estimate(words(13500)).EstimatedHours; got != 1.5 {
		t.Fatalf("hours = %v", got)
	}
}

func newService(m *chaintest.Model, providers ...string) *Service {
	cfg := &config.Config{}
	cfg.LLM.DefaultProvider = config.ProviderGranite
	return NewService(chaintest.NewChain(m, providers...), cfg)
}

func TestAnalyze(t *testing.T) {
	m := &chaintest.Model{Reply: " Good pacing. ", Tokens: 9}
	res, err := newService(m, config.ProviderGranite).Analyze(context.Background(), words(300))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Analysis != "Good pacing." || res.TokensUsed != 9 || res.Metrics.EstimatedMinutes != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !strings.HasPrefix(m.Prompt(), "Analyze the following text for audiobook production.") {
		t.Fatalf("prompt = %q", m.Prompt())
	}
}

func TestAnalyzeRejectsEmptyText(t *testing.T) {
	m := &chaintest.Model{}
	_, err := newService(m, config.ProviderGranite).Analyze(context.Background(), "")
	if !apperrors.IsCode(err, apperrors.CodeInvalidParam) || m.Calls != 0 {
		t.Fatalf("err = %v, calls = %d", err, m.Calls)
	}
}

func TestAnalyzeVendorError(t *testing.T) {
	m := &chaintest.Model{Err: apperrors.Vendor("granite", 503, "")}
	_, err := newService(m, config.ProviderGranite).Analyze(context.Background(), "text")
	if !strings.Contains(apperrors.AsAppError(err).Message, "503") {
		t.Fatalf("err = %v", err)
	}
}
