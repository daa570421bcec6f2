// Package config 提供配置加载和管理功能
package config

import (
	"time"
)

// Config 应用配置根结构
type Config struct {
	App           AppConfig           `yaml:"app" mapstructure:"app"`
	Server        ServerConfig        `yaml:"server" mapstructure:"server"`
	Database      DatabaseConfig      `yaml:"database" mapstructure:"database"`
	Cache         CacheConfig         `yaml:"cache" mapstructure:"cache"`
	Messaging     MessagingConfig     `yaml:"messaging" mapstructure:"messaging"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
	Security      SecurityConfig      `yaml:"security" mapstructure:"security"`
	Agent         AgentConfig         `yaml:"agent" mapstructure:"agent"`
	Session       SessionConfig       `yaml:"session" mapstructure:"session"`
}

// AppConfig 应用基础配置
type AppConfig struct {
	Name    string `yaml:"name" mapstructure:"name"`
	Version string `yaml:"version" mapstructure:"version"`
	Env     string `yaml:"env" mapstructure:"env"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	HTTP HTTPServerConfig `yaml:"http" mapstructure:"http"`
}

// HTTPServerConfig HTTP 服务器配置
type HTTPServerConfig struct {
	Host         string        `yaml:"host" mapstructure:"host"`
	Port         int           `yaml:"port" mapstructure:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Postgres PostgresConfig `yaml:"postgres" mapstructure:"postgres"`
}

// PostgresConfig PostgreSQL 配置
type PostgresConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	Host            string        `yaml:"host" mapstructure:"host"`
	Port            int           `yaml:"port" mapstructure:"port"`
	User            string        `yaml:"user" mapstructure:"user"`
	Password        string        `yaml:"password" mapstructure:"password"`
	Database        string        `yaml:"database" mapstructure:"database"`
	SSLMode         string        `yaml:"ssl_mode" mapstructure:"ssl_mode"`
	MaxOpenConns    int           `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" mapstructure:"conn_max_idle_time"`
	AutoMigrate     bool          `yaml:"auto_migrate" mapstructure:"auto_migrate"`
}

// CacheConfig 缓存配置
type CacheConfig struct {
	Redis RedisConfig `yaml:"redis" mapstructure:"redis"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
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

// MessagingConfig 消息队列配置
type MessagingConfig struct {
	RedisStream RedisStreamConfig `yaml:"redis_stream" mapstructure:"redis_stream"`
}

// RedisStreamConfig Redis Stream 配置
type RedisStreamConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Stream  string `yaml:"stream" mapstructure:"stream"`
	MaxLen  int    `yaml:"max_len" mapstructure:"max_len"`
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
	CORS      CORSConfig      `yaml:"cors" mapstructure:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// RateLimitConfig 单会话消息限流
type RateLimitConfig struct {
	Enabled  bool          `yaml:"enabled" mapstructure:"enabled"`
	Requests int           `yaml:"requests" mapstructure:"requests"`
	Window   time.Duration `yaml:"window" mapstructure:"window"`
}

// CORSConfig CORS 配置
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods" mapstructure:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers" mapstructure:"allowed_headers"`
}

// AgentConfig 对话代理配置
type AgentConfig struct {
	// HistoryWindow 保留的用户发言条数，供补全器推断题材与冲突
	HistoryWindow int             `yaml:"history_window" mapstructure:"history_window"`
	Intent        IntentConfig    `yaml:"intent" mapstructure:"intent"`
	Extractor     ExtractorConfig `yaml:"extractor" mapstructure:"extractor"`
	Readiness     ReadinessConfig `yaml:"readiness" mapstructure:"readiness"`
	Completer     CompleterConfig `yaml:"completer" mapstructure:"completer"`
	Decision      DecisionConfig  `yaml:"decision" mapstructure:"decision"`
	// GateOnHighConflicts 存在高严重度冲突时暂缓创作
	GateOnHighConflicts bool `yaml:"gate_on_high_conflicts" mapstructure:"gate_on_high_conflicts"`
}

// IntentConfig 意图识别扩展关键词，键为意图或设定类别
type IntentConfig struct {
	ExtraKeywords        map[string][]string `yaml:"extra_keywords" mapstructure:"extra_keywords"`
	ExtraSettingKeywords map[string][]string `yaml:"extra_setting_keywords" mapstructure:"extra_setting_keywords"`
}

// ExtractorConfig 设定抽取配置
type ExtractorConfig struct {
	Confidence float64 `yaml:"confidence" mapstructure:"confidence"`
}

// ReadinessConfig 就绪度配置
type ReadinessConfig struct {
	MinReadiness float64 `yaml:"min_readiness" mapstructure:"min_readiness"`
}

// CompleterConfig 补全器配置
type CompleterConfig struct {
	Seed         uint64 `yaml:"seed" mapstructure:"seed"`
	DefaultGenre string `yaml:"default_genre" mapstructure:"default_genre"`
}

// DecisionConfig 创作决策配置
type DecisionConfig struct {
	Adaptive           bool           `yaml:"adaptive" mapstructure:"adaptive"`
	MinThreshold       float64        `yaml:"min_threshold" mapstructure:"min_threshold"`
	IdealThreshold     float64        `yaml:"ideal_threshold" mapstructure:"ideal_threshold"`
	ForceCreateTurns   int            `yaml:"force_create_turns" mapstructure:"force_create_turns"`
	SatisfactionWindow int            `yaml:"satisfaction_window" mapstructure:"satisfaction_window"`
	AdjustmentStep     float64        `yaml:"adjustment_step" mapstructure:"adjustment_step"`
	MinSamples         int            `yaml:"min_samples" mapstructure:"min_samples"`
	HighSatisfaction   float64        `yaml:"high_satisfaction" mapstructure:"high_satisfaction"`
	LowSatisfaction    float64        `yaml:"low_satisfaction" mapstructure:"low_satisfaction"`
	Lengths            map[string]int `yaml:"lengths" mapstructure:"lengths"`
	ExplicitKeywords   []string       `yaml:"explicit_keywords" mapstructure:"explicit_keywords"`
	ContinueKeywords   []string       `yaml:"continue_keywords" mapstructure:"continue_keywords"`
}

// SessionConfig 会话配置
type SessionConfig struct {
	TTL       time.Duration `yaml:"ttl" mapstructure:"ttl"`
	KeyPrefix string        `yaml:"key_prefix" mapstructure:"key_prefix"`
	// RecordTurns 是否把每轮对话写入 PostgreSQL
	RecordTurns bool `yaml:"record_turns" mapstructure:"record_turns"`
	// PublishCreations 创作触发时是否投递生成任务
	PublishCreations bool `yaml:"publish_creations" mapstructure:"publish_creations"`
}
