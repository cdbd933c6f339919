package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFromContextAddsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "debug", "json")
	t.Cleanup(func() { defaultLogger = nil })

	ctx := WithContext(context.Background(), RequestIDKey, "req-1")
	ctx = WithContext(ctx, TraceIDKey, "trace-1")
	Error(ctx, "vendor call failed", errors.New("boom"), "provider", "granite")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v (%s)", err, buf.String())
	}
	if line["request_id"] != "req-1" || line["trace_id"] != "trace-1" {
		t.Fatalf("context fields missing: %v", line)
	}
	if line["error"] != "boom" || line["provider"] != "granite" {
		t.Fatalf("attributes missing: %v", line)
	}
	if _, ok := line["span_id"]; ok {
		t.Fatalf("unexpected span_id: %v", line)
	}
}
