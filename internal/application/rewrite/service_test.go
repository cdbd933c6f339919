package rewrite

import (
	"context"
	"strings"
	"testing"

	"audiobook-ai-api/internal/config"
	"audiobook-ai-api/internal/workflow/chain/chaintest"
	apperrors "audiobook-ai-api/pkg/errors"
)

func newConfig(force bool) *config.Config {
	cfg := &config.Config{}
	cfg.LLM.RewriteProvider = config.ProviderWatsonx
	cfg.Features.Simulation.Force = force
	return cfg
}

func TestRewriteRejectsEmptyText(t *testing.T) {
	svc := NewService(chaintest.NewChain(&chaintest.Model{}), newConfig(false))
	_, err := svc.Rewrite(context.Background(), "", "neutral")
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeInvalidParam || appErr.HTTPStatus != 400 {
		t.Fatalf("unexpected error: %+v", appErr)
	}
}

func TestRewriteSimulatesWithoutCredentials(t *testing.T) {
	m := &chaintest.Model{}
	svc := NewService(chaintest.NewChain(m), newConfig(false))

	res, err := svc.Rewrite(context.Background(), "an ancient door", "whispery")
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if res.RewrittenText != "an old door" || res.Mode != ModeSimulated {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Tone != "whispery" {
		t.Fatalf("tone should be echoed, got %q", res.Tone)
	}
	if m.Calls != 0 {
		t.Fatalf("model called %d times", m.Calls)
	}
}

func TestRewriteDefaultsEmptyTone(t *testing.T) {
	svc := NewService(chaintest.NewChain(&chaintest.Model{}), newConfig(false))
	res, err := svc.Rewrite(context.Background(), "text", "")
	if err != nil || res.Tone != "neutral" {
		t.Fatalf("Rewrite = (%+v, %v)", res, err)
	}
}

func TestRewriteCallsVendor(t *testing.T) {
	m := &chaintest.Model{Reply: "  A dark tale.  \n"}
	svc := NewService(chaintest.NewChain(m, config.ProviderWatsonx), newConfig(false))

	res, err := svc.Rewrite(context.Background(), "A tale.", "suspenseful")
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if res.RewrittenText != "A dark tale." || res.Mode != ModeVendor {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !strings.Contains(m.Prompt(), "suspenseful, dramatic tone") || !strings.Contains(m.Prompt(), "Text: A tale.") {
		t.Fatalf("unexpected prompt: %q", m.Prompt())
	}
	if m.MaxTokens() != 14 {
		t.Fatalf("max tokens = %d, want 14", m.MaxTokens())
	}
}

func TestRewriteForcedSimulation(t *testing.T) {
	m := &chaintest.Model{Reply: "vendor"}
	svc := NewService(chaintest.NewChain(m, config.ProviderWatsonx), newConfig(true))

	res, err := svc.Rewrite(context.Background(), "it emerged", "neutral")
	if err != nil || res.RewrittenText != "it appeared" || res.Mode != ModeSimulated {
		t.Fatalf("Rewrite = (%+v, %v)", res, err)
	}
	if m.Calls != 0 {
		t.Fatalf("model called %d times", m.Calls)
	}
}

func TestRewriteSurfacesVendorError(t *testing.T) {
	m := &chaintest.Model{Err: apperrors.Vendor("watsonx", 503, "unavailable")}
	svc := NewService(chaintest.NewChain(m, config.ProviderWatsonx), newConfig(false))

	_, err := svc.Rewrite(context.Background(), "text", "neutral")
	appErr := apperrors.AsAppError(err)
	if appErr.HTTPStatus != 500 || !strings.Contains(appErr.Message, "503") {
		t.Fatalf("unexpected error: %+v", appErr)
	}
}
