// Package config 提供配置加载功能
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// DefaultDir 默认配置目录
const DefaultDir = "configs"

// envBindings 兼容原有部署使用的环境变量名
var envBindings = map[string]string{
	"server.http.port":                        "PORT",
	"observability.logging.level":             "LOG_LEVEL",
	"llm.providers.granite.api_key":           "IBM_GRANITE_API_KEY",
	"llm.providers.granite.base_url":          "IBM_GRANITE_URL",
	"llm.providers.granite.model":             "IBM_GRANITE_MODEL",
	"llm.providers.granite.max_tokens":        "IBM_GRANITE_MAX_TOKENS",
	"llm.providers.granite.temperature":       "IBM_GRANITE_TEMPERATURE",
	"llm.providers.watsonx.api_key":           "WATSONX_API_KEY",
	"llm.providers.watsonx.base_url":          "WATSONX_URL",
	"llm.providers.watsonx.model":             "WATSONX_MODEL",
	"llm.providers.watsonx.project_id":        "WATSONX_PROJECT_ID",
	"llm.providers.openai.api_key":            "OPENAI_API_KEY",
	"llm.providers.openai.base_url":           "OPENAI_BASE_URL",
	"llm.providers.openai.model":              "OPENAI_MODEL",
	"speech.watson.api_key":                   "WATSON_TTS_API_KEY",
	"speech.watson.base_url":                  "WATSON_TTS_URL",
	"speech.watson.instance_id":               "WATSON_TTS_INSTANCE_ID",
	"features.simulation.force":               "SIMULATION_FORCE",
	"cache.redis.enabled":                     "REDIS_ENABLED",
	"cache.redis.host":                        "REDIS_HOST",
	"observability.tracing.enabled":           "OTEL_TRACING_ENABLED",
	"observability.tracing.endpoint":          "OTEL_EXPORTER_OTLP_ENDPOINT",
	"security.rate_limit.enabled":             "RATE_LIMIT_ENABLED",
	"security.rate_limit.requests_per_second": "RATE_LIMIT_RPS",
}

// Load 从默认目录加载配置
func Load() (*Config, error) {
	return LoadFrom(DefaultDir)
}

// LoadFrom 按优先级加载：默认配置 -> 环境配置 -> 环境变量
// 配置文件都是可选的，缺失时完全依赖默认值与环境变量
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := loadConfigFile(v, filepath.Join(dir, "config.yaml")); err != nil {
		return nil, err
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	if err := loadConfigFile(v, filepath.Join(dir, fmt.Sprintf("config.%s.yaml", env))); err != nil {
		return nil, err
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, envName := range envBindings {
		if err := v.BindEnv(key, envName); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", envName, err)
		}
	}

	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.App.Env = env
	return &cfg, nil
}

// loadConfigFile 读取文件、替换环境变量并合并到 viper，文件不存在时跳过
func loadConfigFile(v *viper.Viper, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := v.MergeConfig(strings.NewReader(expandEnv(string(content)))); err != nil {
		return fmt.Errorf("failed to merge config %s: %w", path, err)
	}
	return nil
}

// envPlaceholder 匹配 ${VAR} 或 ${VAR:default}
var envPlaceholder = regexp.MustCompile(`\${(\w+)(:([^}]*))?}`)

// expandEnv 替换 ${VAR:default} 占位符，未定义且无默认值时原样保留
func expandEnv(s string) string {
	return envPlaceholder.ReplaceAllStringFunc(s, func(match string) string {
		sub := envPlaceholder.FindStringSubmatch(match)
		if val, ok := os.LookupEnv(sub[1]); ok {
			return val
		}
		if sub[2] != "" {
			return sub[3]
		}
		return match
	})
}

// setDefaults 设置配置默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "audiobook-ai-api")
	v.SetDefault("app.version", "v0.0.0")

	v.SetDefault("server.http.host", "0.0.0.0")
	v.SetDefault("server.http.port", 5000)
	v.SetDefault("server.http.read_timeout", "30s")
	v.SetDefault("server.http.write_timeout", "60s")
	v.SetDefault("server.http.idle_timeout", "120s")
	v.SetDefault("server.static.index", "web/index.html")

	v.SetDefault("llm.default_provider", ProviderGranite)
	v.SetDefault("llm.rewrite_provider", ProviderWatsonx)

	v.SetDefault("llm.providers.granite.kind", KindGranite)
	v.SetDefault("llm.providers.granite.base_url", "https://bam-api.res.ibm.com/v1")
	v.SetDefault("llm.providers.granite.generation_path", "/text/generation")
	v.SetDefault("llm.providers.granite.model", "ibm/granite-13b-chat-v2")
	v.SetDefault("llm.providers.granite.max_tokens", 2048)
	v.SetDefault("llm.providers.granite.temperature", 0.7)
	v.SetDefault("llm.providers.granite.top_p", 0.9)
	v.SetDefault("llm.providers.granite.top_k", 50)
	v.SetDefault("llm.providers.granite.timeout", "30s")

	v.SetDefault("llm.providers.watsonx.kind", KindGranite)
	v.SetDefault("llm.providers.watsonx.base_url", "https://us-south.ml.cloud.ibm.com")
	v.SetDefault("llm.providers.watsonx.generation_path", "/ml/v1-beta/generation/text")
	v.SetDefault("llm.providers.watsonx.model", "ibm/granite-13b-chat-v2")
	v.SetDefault("llm.providers.watsonx.max_tokens", 2048)
	v.SetDefault("llm.providers.watsonx.temperature", 0.7)
	v.SetDefault("llm.providers.watsonx.top_p", 0.9)
	v.SetDefault("llm.providers.watsonx.top_k", 50)
	v.SetDefault("llm.providers.watsonx.timeout", "30s")

	v.SetDefault("llm.providers.openai.kind", KindOpenAI)
	v.SetDefault("llm.providers.openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("llm.providers.openai.model", "gpt-4o-mini")
	v.SetDefault("llm.providers.openai.max_tokens", 2048)
	v.SetDefault("llm.providers.openai.temperature", 0.7)
	v.SetDefault("llm.providers.openai.top_p", 0.9)
	v.SetDefault("llm.providers.openai.timeout", "30s")

	v.SetDefault("speech.watson.base_url", "https://api.us-south.text-to-speech.watson.cloud.ibm.com")
	v.SetDefault("speech.watson.accept", "audio/mp3")
	v.SetDefault("speech.watson.timeout", "30s")

	v.SetDefault("cache.generation_ttl", "10m")
	v.SetDefault("cache.redis.enabled", false)
	v.SetDefault("cache.redis.host", "localhost")
	v.SetDefault("cache.redis.port", 6379)
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.pool_size", 20)
	v.SetDefault("cache.redis.min_idle_conns", 2)
	v.SetDefault("cache.redis.dial_timeout", "5s")
	v.SetDefault("cache.redis.read_timeout", "3s")
	v.SetDefault("cache.redis.write_timeout", "3s")

	v.SetDefault("observability.logging.level", "info")
	v.SetDefault("observability.logging.format", "json")
	v.SetDefault("observability.tracing.enabled", false)
	v.SetDefault("observability.tracing.endpoint", "localhost:4317")
	v.SetDefault("observability.tracing.sample_rate", 1.0)
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.path", "/metrics")

	v.SetDefault("security.rate_limit.enabled", false)
	v.SetDefault("security.rate_limit.requests_per_second", 20)
	v.SetDefault("security.cors.allowed_origins", []string{"*"})

	v.SetDefault("features.simulation.force", false)
}
