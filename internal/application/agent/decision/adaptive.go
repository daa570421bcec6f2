package decision

import (
	"math"

	"z-novel-ai-agent/internal/domain/entity"
)

// trailingSamples 计算平均满意度时取最近的样本数
const trailingSamples = 3

// AdaptiveEngine 根据创作后的满意度反馈微调最低阈值。
// 调整后的阈值只作为参数传给 Evaluate，不修改共享配置；非并发安全，由会话层串行调用。
type AdaptiveEngine struct {
	cfg       Config
	scores    []float64
	threshold float64
}

// NewAdaptiveEngine 创建自适应引擎，初始阈值等于配置的最低阈值
func NewAdaptiveEngine(cfg Config) *AdaptiveEngine {
	cfg = cfg.withDefaults()
	return &AdaptiveEngine{cfg: cfg, threshold: cfg.MinThreshold}
}

// ShouldCreate 使用当前调整后的阈值评估
func (e *AdaptiveEngine) ShouldCreate(ctx entity.CreationContext) entity.CreationDecision {
	cfg := e.cfg
	cfg.MinThreshold = e.threshold
	return Evaluate(cfg, ctx)
}

// UpdateSatisfaction 记录一次满意度（0~1），样本数达到要求后按最近三次均值调整阈值，返回调整后的阈值
func (e *AdaptiveEngine) UpdateSatisfaction(score float64) float64 {
	e.scores = append(e.scores, clamp01(score))
	if len(e.scores) > e.cfg.SatisfactionWindow {
		e.scores = append([]float64(nil), e.scores[len(e.scores)-e.cfg.SatisfactionWindow:]...)
	}
	if len(e.scores) < e.cfg.MinSamples {
		return e.threshold
	}

	avg := mean(e.scores[len(e.scores)-min(trailingSamples, len(e.scores)):])
	switch {
	case avg > e.cfg.HighSatisfaction:
		e.threshold += e.cfg.AdjustmentStep
	case avg < e.cfg.LowSatisfaction:
		e.threshold -= e.cfg.AdjustmentStep
	}
	e.threshold = round(math.Min(e.cfg.IdealThreshold, math.Max(e.cfg.MinThreshold, e.threshold)))
	return e.threshold
}

// Threshold 当前生效的最低阈值
func (e *AdaptiveEngine) Threshold() float64 {
	return e.threshold
}

// Scores 满意度样本副本
func (e *AdaptiveEngine) Scores() []float64 {
	return append([]float64(nil), e.scores...)
}

// Restore 从快照恢复样本与阈值
func (e *AdaptiveEngine) Restore(scores []float64, threshold float64) {
	e.scores = append([]float64(nil), scores...)
	if threshold <= 0 {
		threshold = e.cfg.MinThreshold
	}
	e.threshold = math.Min(e.cfg.IdealThreshold, math.Max(e.cfg.MinThreshold, threshold))
}

// Config 返回基础配置
func (e *AdaptiveEngine) Config() Config {
	return e.cfg
}

func mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

// round 消除多次加减步长带来的浮点误差
func round(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
