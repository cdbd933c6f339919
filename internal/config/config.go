// Package config 提供配置加载和管理功能
package config

import (
	"strings"
	"time"
)

// Provider 名称
const (
	ProviderGranite = "granite"
	ProviderWatsonx = "watsonx"
	ProviderOpenAI  = "openai"
)

// Provider 类型
const (
	KindGranite = "granite"
	KindOpenAI  = "openai"
)

// Config 应用配置根结构
type Config struct {
	App           AppConfig           `yaml:"app" mapstructure:"app"`
	Server        ServerConfig        `yaml:"server" mapstructure:"server"`
	LLM           LLMConfig           `yaml:"llm" mapstructure:"llm"`
	Speech        SpeechConfig        `yaml:"speech" mapstructure:"speech"`
	Cache         CacheConfig         `yaml:"cache" mapstructure:"cache"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
	Security      SecurityConfig      `yaml:"security" mapstructure:"security"`
	Features      FeaturesConfig      `yaml:"features" mapstructure:"features"`
}

// AppConfig 应用基础配置
type AppConfig struct {
	Name    string `yaml:"name" mapstructure:"name"`
	Version string `yaml:"version" mapstructure:"version"`
	Env     string `yaml:"env" mapstructure:"env"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	HTTP   HTTPServerConfig `yaml:"http" mapstructure:"http"`
	Static StaticConfig     `yaml:"static" mapstructure:"static"`
}

// HTTPServerConfig HTTP 服务器配置
type HTTPServerConfig struct {
	Host         string        `yaml:"host" mapstructure:"host"`
	Port         int           `yaml:"port" mapstructure:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
}

// StaticConfig 前端静态页面配置
type StaticConfig struct {
	Index string `yaml:"index" mapstructure:"index"`
}

// LLMConfig 文本生成配置
type LLMConfig struct {
	// DefaultProvider enhance/script/analyze/voices 使用的 provider
	DefaultProvider string `yaml:"default_provider" mapstructure:"default_provider"`
	// RewriteProvider 语气改写使用的 provider
	RewriteProvider string                    `yaml:"rewrite_provider" mapstructure:"rewrite_provider"`
	Providers       map[string]ProviderConfig `yaml:"providers" mapstructure:"providers"`
}

// ProviderConfig 文本生成厂商凭据与默认生成参数
type ProviderConfig struct {
	// Kind granite 或 openai
	Kind           string        `yaml:"kind" mapstructure:"kind"`
	APIKey         string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL        string        `yaml:"base_url" mapstructure:"base_url"`
	GenerationPath string        `yaml:"generation_path" mapstructure:"generation_path"`
	Model          string        `yaml:"model" mapstructure:"model"`
	ProjectID      string        `yaml:"project_id" mapstructure:"project_id"`
	MaxTokens      int           `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature    float64       `yaml:"temperature" mapstructure:"temperature"`
	TopP           float64       `yaml:"top_p" mapstructure:"top_p"`
	TopK           int           `yaml:"top_k" mapstructure:"top_k"`
	Timeout        time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// Configured 是否配置了 API Key
func (p ProviderConfig) Configured() bool {
	return strings.TrimSpace(p.APIKey) != ""
}

// Provider 按名称取 provider 配置
func (c LLMConfig) Provider(name string) (ProviderConfig, bool) {
	p, ok := c.Providers[name]
	return p, ok
}

// SpeechConfig 语音合成配置
type SpeechConfig struct {
	Watson WatsonTTSConfig `yaml:"watson" mapstructure:"watson"`
}

// WatsonTTSConfig Watson TTS 凭据
type WatsonTTSConfig struct {
	APIKey     string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL    string        `yaml:"base_url" mapstructure:"base_url"`
	InstanceID string        `yaml:"instance_id" mapstructure:"instance_id"`
	Accept     string        `yaml:"accept" mapstructure:"accept"`
	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// Configured 是否配置了 API Key
func (w WatsonTTSConfig) Configured() bool {
	return strings.TrimSpace(w.APIKey) != ""
}

// CacheConfig 缓存配置
type CacheConfig struct {
	Redis         RedisConfig   `yaml:"redis" mapstructure:"redis"`
	GenerationTTL time.Duration `yaml:"generation_ttl" mapstructure:"generation_ttl"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled      bool          `yaml:"enabled" mapstructure:"enabled"`
	Host         string        `yaml:"host" mapstructure:"host"`
	Port         int           `yaml:"port" mapstructure:"port"`
	Password     string        `yaml:"password" mapstructure:"password"`
	DB           int           `yaml:"db" mapstructure:"db"`
	PoolSize     int           `yaml:"pool_size" mapstructure:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns" mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
}

// ObservabilityConfig 可观测性配置
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
	Tracing TracingConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// TracingConfig 追踪配置
type TracingConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors" mapstructure:"cors"`
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled" mapstructure:"enabled"`
	RequestsPerSecond int  `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// CORSConfig CORS 配置
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods" mapstructure:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers" mapstructure:"allowed_headers"`
}

// FeaturesConfig 功能开关
type FeaturesConfig struct {
	Simulation SimulationFeature `yaml:"simulation" mapstructure:"simulation"`
}

// SimulationFeature 模拟模式开关
// 未配置凭据时总是走模拟；Force 为 true 时即使有凭据也走模拟
type SimulationFeature struct {
	Force bool `yaml:"force" mapstructure:"force"`
}
