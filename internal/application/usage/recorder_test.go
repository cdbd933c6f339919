package usage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"audiobook-ai-api/internal/domain/service"
	apperrors "audiobook-ai-api/pkg/errors"
	"audiobook-ai-api/pkg/metrics"
)

func TestRecordLabelsByOutcome(t *testing.T) {
	r := NewRecorder()
	ctx := context.Background()

	before := testutil.ToFloat64(metrics.LLMCallTotal.WithLabelValues("usage_test", "granite", "vendor_error"))
	r.Record(ctx, service.LLMUsageInput{
		Workflow: "usage_test",
		Provider: "granite",
		Err:      apperrors.Vendor("granite", 503, ""),
	})
	after := testutil.ToFloat64(metrics.LLMCallTotal.WithLabelValues("usage_test", "granite", "vendor_error"))
	if after-before != 1 {
		t.Fatalf("vendor_error counter delta = %v", after-before)
	}

	tokensBefore := testutil.ToFloat64(metrics.LLMTokensUsed.WithLabelValues("usage_test", "granite"))
	r.Record(ctx, service.LLMUsageInput{
		Workflow:         "usage_test",
		Provider:         "granite",
		CompletionTokens: 12,
		Duration:         time.Second,
	})
	if delta := testutil.ToFloat64(metrics.LLMTokensUsed.WithLabelValues("usage_test", "granite")) - tokensBefore; delta != 12 {
		t.Fatalf("tokens delta = %v", delta)
	}
}

func TestStatusFromError(t *testing.T) {
	if statusFromError(apperrors.NotConfigured("granite")) != "not_configured" {
		t.Fatal("not configured mismatch")
	}
	if statusFromError(errors.New("x")) != "error" {
		t.Fatal("generic mismatch")
	}
}
