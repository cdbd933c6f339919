package watson

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"audiobook-ai-api/internal/config"
	"audiobook-ai-api/internal/workflow/port"
	apperrors "audiobook-ai-api/pkg/errors"
)

func TestSynthesizeSendsBasicAuthAndVoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/instances/inst-1/v1/synthesize" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("rate_percentage"); got != "50" {
			t.Errorf("rate_percentage = %q", got)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "apikey" || pass != "secret" {
			t.Errorf("basic auth = (%q, %q, %v)", user, pass, ok)
		}
		if r.Header.Get("Accept") != "audio/mp3" {
			t.Errorf("accept = %q", r.Header.Get("Accept"))
		}
		var req synthesizeRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Text != "Hello" || req.Voice != "en-US_LisaV3Voice" || req.Accept != "audio/mp3" {
			t.Errorf("unexpected body: %+v", req)
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3fake"))
	}))
	defer srv.Close()

	s := NewSynthesizer(config.WatsonTTSConfig{APIKey: "secret", BaseURL: srv.URL, InstanceID: "inst-1"}, nil)
	out, err := s.Synthesize(context.Background(), "Hello", &port.SynthesizeOptions{Voice: "en-US_LisaV3Voice", Speed: 1.5})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if string(out.Content) != "ID3fake" || out.ContentType != "audio/mpeg" {
		t.Fatalf("unexpected synthesis: %+v", out)
	}
}

func TestSynthesizeVendorError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("bad key"))
	}))
	defer srv.Close()

	s := NewSynthesizer(config.WatsonTTSConfig{APIKey: "k", BaseURL: srv.URL}, nil)
	_, err := s.Synthesize(context.Background(), "Hello", nil)
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeVendorError || !strings.Contains(appErr.Message, "401") {
		t.Fatalf("unexpected error: %+v", appErr)
	}
}

func TestSynthesizeWithoutKey(t *testing.T) {
	s := NewSynthesizer(config.WatsonTTSConfig{BaseURL: "http://unused"}, nil)
	if s.Configured() {
		t.Fatal("configured without key")
	}
	_, err := s.Synthesize(context.Background(), "Hello", nil)
	if !apperrors.IsCode(err, apperrors.CodeNotConfigured) {
		t.Fatalf("expected not configured, got %v", err)
	}
}

func TestRatePercentage(t *testing.T) {
	cases := []struct {
		speed float64
		rate  int
		ok    bool
	}{
		{1.0, 0, false},
		{0, 0, false},
		{1.25, 25, true},
		{0.5, -50, true},
		{3, 100, true},
	}
	for _, tc := range cases {
		rate, ok := ratePercentage(tc.speed)
		if rate != tc.rate || ok != tc.ok {
			t.Errorf("ratePercentage(%v) = (%d, %v), want (%d, %v)", tc.speed, rate, ok, tc.rate, tc.ok)
		}
	}
}

func TestSynthesizeTimeoutIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	s := NewSynthesizer(config.WatsonTTSConfig{APIKey: "k", BaseURL: srv.URL, Timeout: 200 * time.Millisecond}, nil)
	start := time.Now()
	_, err := s.Synthesize(context.Background(), "Hello", nil)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("synthesis took %v, timeout not applied", elapsed)
	}
	if !apperrors.IsCode(err, apperrors.CodeTransportError) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestReadAudioRejectsOversizedBody(t *testing.T) {
	audio, err := readAudio(strings.NewReader("12345"), 5)
	if err != nil || string(audio) != "12345" {
		t.Fatalf("readAudio at limit = (%q, %v)", audio, err)
	}

	_, err = readAudio(strings.NewReader("123456"), 5)
	if !apperrors.IsCode(err, apperrors.CodeVendorError) {
		t.Fatalf("expected vendor error for oversized audio, got %v", err)
	}
}
