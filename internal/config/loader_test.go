package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromDefaultsWithoutFiles(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("IBM_GRANITE_API_KEY", "")

	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.Server.HTTP.Port != 5000 {
		t.Fatalf("port = %d, want 5000", cfg.Server.HTTP.Port)
	}
	granite, ok := cfg.LLM.Provider(ProviderGranite)
	if !ok {
		t.Fatal("granite provider missing")
	}
	if granite.Configured() {
		t.Fatal("granite should not be configured without a key")
	}
	if granite.BaseURL != "https://bam-api.res.ibm.com/v1" || granite.Model != "ibm/granite-13b-chat-v2" {
		t.Fatalf("unexpected granite defaults: %+v", granite)
	}
	if granite.MaxTokens != 2048 || granite.Temperature != 0.7 || granite.TopK != 50 {
		t.Fatalf("unexpected generation defaults: %+v", granite)
	}
	if granite.Timeout != 30*time.Second {
		t.Fatalf("timeout = %v", granite.Timeout)
	}
	watsonx, _ := cfg.LLM.Provider(ProviderWatsonx)
	if watsonx.GenerationPath != "/ml/v1-beta/generation/text" {
		t.Fatalf("watsonx path = %q", watsonx.GenerationPath)
	}
	if cfg.Cache.GenerationTTL != 10*time.Minute {
		t.Fatalf("generation ttl = %v", cfg.Cache.GenerationTTL)
	}
	if cfg.App.Env != "test" {
		t.Fatalf("env = %q", cfg.App.Env)
	}
}

func TestLoadFromBindsVendorEnv(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("IBM_GRANITE_API_KEY", "g-key")
	t.Setenv("IBM_GRANITE_URL", "http://granite.local/v1")
	t.Setenv("WATSONX_PROJECT_ID", "proj-1")
	t.Setenv("WATSON_TTS_API_KEY", "tts-key")
	t.Setenv("WATSON_TTS_INSTANCE_ID", "inst-9")

	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	granite, _ := cfg.LLM.Provider(ProviderGranite)
	if !granite.Configured() || granite.APIKey != "g-key" {
		t.Fatalf("granite key not bound: %+v", granite)
	}
	if granite.BaseURL != "http://granite.local/v1" {
		t.Fatalf("granite url = %q", granite.BaseURL)
	}
	watsonx, _ := cfg.LLM.Provider(ProviderWatsonx)
	if watsonx.ProjectID != "proj-1" {
		t.Fatalf("project id = %q", watsonx.ProjectID)
	}
	if !cfg.Speech.Watson.Configured() || cfg.Speech.Watson.InstanceID != "inst-9" {
		t.Fatalf("watson tts not bound: %+v", cfg.Speech.Watson)
	}
}

func TestLoadFromMergesEnvFileAndExpandsPlaceholders(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("APP_ENV", "staging")
	t.Setenv("STAGING_MODEL", "ibm/granite-3-8b-instruct")

	base := "llm:\n  providers:\n    granite:\n      model: ${STAGING_MODEL:unused}\n      top_k: ${MISSING_TOP_K:40}\n"
	staging := "features:\n  simulation:\n    force: true\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(base), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.staging.yaml"), []byte(staging), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	granite, _ := cfg.LLM.Provider(ProviderGranite)
	if granite.Model != "ibm/granite-3-8b-instruct" {
		t.Fatalf("model = %q", granite.Model)
	}
	if granite.TopK != 40 {
		t.Fatalf("top_k = %d", granite.TopK)
	}
	if !cfg.Features.Simulation.Force {
		t.Fatal("env-specific file not merged")
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("SET_VAR", "value")

	cases := map[string]string{
		"${SET_VAR}":            "value",
		"${SET_VAR:fallback}":   "value",
		"${UNSET_VAR:fallback}": "fallback",
		"${UNSET_VAR:}":         "",
		"${UNSET_VAR}":          "${UNSET_VAR}",
	}
	for in, want := range cases {
		if got := expandEnv(in); got != want {
			t.Errorf("expandEnv(%q) = %q, want %q", in, got, want)
		}
	}
}
