package decision

import "z-novel-ai-agent/internal/domain/entity"

// Config 创作决策参数。阈值引擎与自适应引擎共用同一份配置，
// 自适应引擎只在副本上替换 MinThreshold。
type Config struct {
	MinThreshold     float64
	IdealThreshold   float64
	ForceCreateTurns int

	SatisfactionWindow int
	AdjustmentStep     float64
	MinSamples         int
	HighSatisfaction   float64
	LowSatisfaction    float64

	Lengths map[entity.CreationStrategy]int

	ExplicitKeywords []string
	ContinueKeywords []string
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		MinThreshold:       0.3,
		IdealThreshold:     0.7,
		ForceCreateTurns:   8,
		SatisfactionWindow: 10,
		AdjustmentStep:     0.05,
		MinSamples:         3,
		HighSatisfaction:   0.7,
		LowSatisfaction:    0.4,
		Lengths: map[entity.CreationStrategy]int{
			entity.StrategyOutline:  800,
			entity.StrategyFull:     3000,
			entity.StrategyContinue: 2000,
			entity.StrategyExpand:   1500,
			entity.StrategyRewrite:  2000,
		},
		ExplicitKeywords: append([]string(nil), defaultExplicitKeywords...),
		ContinueKeywords: append([]string(nil), defaultContinueKeywords...),
	}
}

// withDefaults 补齐零值字段
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MinThreshold <= 0 {
		c.MinThreshold = d.MinThreshold
	}
	if c.IdealThreshold <= 0 {
		c.IdealThreshold = d.IdealThreshold
	}
	if c.IdealThreshold < c.MinThreshold {
		c.IdealThreshold = c.MinThreshold
	}
	if c.ForceCreateTurns <= 0 {
		c.ForceCreateTurns = d.ForceCreateTurns
	}
	if c.SatisfactionWindow <= 0 {
		c.SatisfactionWindow = d.SatisfactionWindow
	}
	if c.AdjustmentStep <= 0 {
		c.AdjustmentStep = d.AdjustmentStep
	}
	if c.MinSamples <= 0 {
		c.MinSamples = d.MinSamples
	}
	if c.HighSatisfaction <= 0 {
		c.HighSatisfaction = d.HighSatisfaction
	}
	if c.LowSatisfaction <= 0 {
		c.LowSatisfaction = d.LowSatisfaction
	}
	lengths := make(map[entity.CreationStrategy]int, len(d.Lengths))
	for k, v := range d.Lengths {
		lengths[k] = v
	}
	for k, v := range c.Lengths {
		if v > 0 {
			lengths[k] = v
		}
	}
	c.Lengths = lengths
	if len(c.ExplicitKeywords) == 0 {
		c.ExplicitKeywords = d.ExplicitKeywords
	}
	if len(c.ContinueKeywords) == 0 {
		c.ContinueKeywords = d.ContinueKeywords
	}
	return c
}

// TriggerKeywords 显式创作与继续信号关键词（含默认值），识别意图时需要把它们归入 create
func (c Config) TriggerKeywords() []string {
	c = c.withDefaults()
	out := make([]string, 0, len(c.ExplicitKeywords)+len(c.ContinueKeywords))
	out = append(out, c.ExplicitKeywords...)
	return append(out, c.ContinueKeywords...)
}
