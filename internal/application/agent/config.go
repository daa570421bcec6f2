package agent

import (
	"strings"

	"z-novel-ai-agent/internal/application/agent/completer"
	"z-novel-ai-agent/internal/application/agent/decision"
	"z-novel-ai-agent/internal/application/agent/extractor"
	"z-novel-ai-agent/internal/application/agent/readiness"
	"z-novel-ai-agent/internal/config"
	"z-novel-ai-agent/internal/domain/entity"
)

// Config 对话代理配置
type Config struct {
	HistoryWindow       int
	ExtractorConfidence float64
	MinReadiness        float64
	Completer           completer.Config
	Decision            decision.Config
	// Adaptive 为 true 时根据满意度反馈调整创作阈值
	Adaptive bool
	// GateOnHighConflicts 存在高严重度冲突时暂缓创作
	GateOnHighConflicts bool

	ExtraIntentKeywords  map[entity.Intent][]string
	ExtraSettingKeywords map[entity.SettingType][]string
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		HistoryWindow:       20,
		ExtractorConfidence: extractor.DefaultConfidence,
		MinReadiness:        readiness.DefaultMinReadiness,
		Completer:           completer.Config{Seed: 20240601, DefaultGenre: string(completer.GenreFantasy)},
		Decision:            decision.DefaultConfig(),
		Adaptive:            true,
	}
}

// FromConfig 由应用配置构造代理配置，零值字段沿用默认值
func FromConfig(c config.AgentConfig) Config {
	cfg := DefaultConfig()
	if c.HistoryWindow > 0 {
		cfg.HistoryWindow = c.HistoryWindow
	}
	if c.Extractor.Confidence > 0 {
		cfg.ExtractorConfidence = c.Extractor.Confidence
	}
	if c.Readiness.MinReadiness > 0 {
		cfg.MinReadiness = c.Readiness.MinReadiness
	}
	if c.Completer.Seed != 0 {
		cfg.Completer.Seed = c.Completer.Seed
	}
	if c.Completer.DefaultGenre != "" {
		cfg.Completer.DefaultGenre = c.Completer.DefaultGenre
	}
	cfg.GateOnHighConflicts = c.GateOnHighConflicts

	d := c.Decision
	cfg.Adaptive = d.Adaptive
	cfg.Decision = decision.Config{
		MinThreshold:       d.MinThreshold,
		IdealThreshold:     d.IdealThreshold,
		ForceCreateTurns:   d.ForceCreateTurns,
		SatisfactionWindow: d.SatisfactionWindow,
		AdjustmentStep:     d.AdjustmentStep,
		MinSamples:         d.MinSamples,
		HighSatisfaction:   d.HighSatisfaction,
		LowSatisfaction:    d.LowSatisfaction,
		ExplicitKeywords:   d.ExplicitKeywords,
		ContinueKeywords:   d.ContinueKeywords,
	}
	if len(d.Lengths) > 0 {
		cfg.Decision.Lengths = make(map[entity.CreationStrategy]int, len(d.Lengths))
		for k, v := range d.Lengths {
			cfg.Decision.Lengths[entity.CreationStrategy(strings.ToLower(k))] = v
		}
	}

	if len(c.Intent.ExtraKeywords) > 0 {
		cfg.ExtraIntentKeywords = make(map[entity.Intent][]string, len(c.Intent.ExtraKeywords))
		for k, v := range c.Intent.ExtraKeywords {
			cfg.ExtraIntentKeywords[entity.Intent(strings.ToLower(k))] = v
		}
	}
	if len(c.Intent.ExtraSettingKeywords) > 0 {
		cfg.ExtraSettingKeywords = make(map[entity.SettingType][]string, len(c.Intent.ExtraSettingKeywords))
		for k, v := range c.Intent.ExtraSettingKeywords {
			cfg.ExtraSettingKeywords[entity.SettingType(strings.ToLower(k))] = v
		}
	}
	return cfg
}

// Factory 按会话创建代理实例，所有实例共享同一份配置
type Factory struct {
	cfg Config
}

// NewFactory 创建代理工厂
func NewFactory(cfg Config) *Factory {
	return &Factory{cfg: cfg}
}

// New 为指定会话创建代理
func (f *Factory) New(sessionID string) *Agent {
	return New(sessionID, f.cfg)
}

// Config 返回工厂配置
func (f *Factory) Config() Config {
	return f.cfg
}
