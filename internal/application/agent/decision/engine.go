// Package decision 创作时机与生成策略决策
package decision

import (
	"fmt"

	"z-novel-ai-agent/internal/application/agent/agentutil"
	"z-novel-ai-agent/internal/domain/entity"
)

const (
	confidenceExplicit  = 0.95
	confidenceContinue  = 0.95
	confidenceIdeal     = 0.85
	confidenceAutoFill  = 0.7
	confidenceForced    = 0.5
	minTurnsForAutoFill = 2
)

var (
	defaultExplicitKeywords = []string{
		"开始写", "开始创作", "开始吧", "可以开始", "写吧", "动笔", "生成",
		"start writing", "go ahead", "write it",
	}
	defaultContinueKeywords = []string{
		"继续", "接着写", "下一章", "然后呢", "continue", "next chapter",
	}
	rewriteKeywords = []string{"重写", "重新写", "rewrite"}
	expandKeywords  = []string{"扩写", "展开", "详细写", "expand"}
	fullKeywords    = []string{"完整", "全文", "整篇", "full"}
)

// Engine 创作决策引擎
type Engine interface {
	ShouldCreate(ctx entity.CreationContext) entity.CreationDecision
}

// Evaluate 按固定优先级评估是否开始创作，纯函数：
// 显式请求 → 继续信号 → 达到理想阈值 → 达到最低阈值且至少两轮 → 轮数上限 → 不创作。
func Evaluate(cfg Config, ctx entity.CreationContext) entity.CreationDecision {
	cfg = cfg.withDefaults()
	text := agentutil.Normalize(ctx.UserInput)
	score := ctx.Readiness.Score

	d := entity.CreationDecision{Trigger: entity.TriggerNone}
	_, explicit := agentutil.ContainsAny(text, cfg.ExplicitKeywords)
	_, cont := agentutil.ContainsAny(text, cfg.ContinueKeywords)

	switch {
	case explicit:
		d.ShouldCreate = true
		d.Confidence = confidenceExplicit
		d.Trigger = entity.TriggerExplicitRequest
		d.Strategy = SelectStrategy(cfg, ctx.UserInput, ctx.HasCreatedBefore)
		d.Reason = "用户明确要求开始创作"
	case cont && ctx.HasCreatedBefore:
		d.ShouldCreate = true
		d.Confidence = confidenceContinue
		d.Trigger = entity.TriggerUserContinue
		d.Strategy = entity.StrategyContinue
		d.Reason = "用户要求继续创作"
	case score >= cfg.IdealThreshold:
		d.ShouldCreate = true
		d.Confidence = confidenceIdeal
		d.Trigger = entity.TriggerReadinessThreshold
		d.Strategy = SelectStrategy(cfg, ctx.UserInput, ctx.HasCreatedBefore)
		d.Reason = fmt.Sprintf("设定完整度 %.2f 达到理想阈值 %.2f", score, cfg.IdealThreshold)
	case score >= cfg.MinThreshold && ctx.TurnCount >= minTurnsForAutoFill:
		d.ShouldCreate = true
		d.Confidence = confidenceAutoFill
		d.Trigger = entity.TriggerReadinessThreshold
		d.Strategy = SelectStrategy(cfg, ctx.UserInput, ctx.HasCreatedBefore)
		d.Reason = fmt.Sprintf("设定完整度 %.2f 达到最低阈值 %.2f，其余设定自动补全", score, cfg.MinThreshold)
	case ctx.TurnCount >= cfg.ForceCreateTurns:
		d.ShouldCreate = true
		d.Confidence = confidenceForced
		d.Trigger = entity.TriggerForcedTimeout
		d.Strategy = SelectStrategy(cfg, ctx.UserInput, ctx.HasCreatedBefore)
		d.Reason = fmt.Sprintf("对话已进行 %d 轮，先产出内容再调整", ctx.TurnCount)
	default:
		d.Confidence = clamp01(1 - score)
		d.Strategy = entity.StrategyOutline
		d.Reason = "设定信息不足，继续收集"
	}

	d.SuggestedLength = cfg.Lengths[d.Strategy]
	if d.ShouldCreate && ctx.CurrentChapter > 0 &&
		(d.Strategy == entity.StrategyRewrite || d.Strategy == entity.StrategyExpand) {
		d.SuggestedChapter = ctx.CurrentChapter
	}
	return d
}

// SelectStrategy 首次创作默认大纲，之后默认续写；重写、扩写、全文与继续信号可覆盖
func SelectStrategy(cfg Config, userInput string, hasCreatedBefore bool) entity.CreationStrategy {
	cfg = cfg.withDefaults()
	text := agentutil.Normalize(userInput)

	if _, ok := agentutil.ContainsAny(text, rewriteKeywords); ok {
		return entity.StrategyRewrite
	}
	if _, ok := agentutil.ContainsAny(text, expandKeywords); ok {
		return entity.StrategyExpand
	}
	if _, ok := agentutil.ContainsAny(text, fullKeywords); ok {
		return entity.StrategyFull
	}
	if _, ok := agentutil.ContainsAny(text, cfg.ContinueKeywords); ok && hasCreatedBefore {
		return entity.StrategyContinue
	}
	if !hasCreatedBefore {
		return entity.StrategyOutline
	}
	return entity.StrategyContinue
}

// ThresholdEngine 固定阈值决策
type ThresholdEngine struct {
	cfg Config
}

// NewThresholdEngine 创建固定阈值引擎
func NewThresholdEngine(cfg Config) *ThresholdEngine {
	return &ThresholdEngine{cfg: cfg.withDefaults()}
}

// ShouldCreate 评估是否创作
func (e *ThresholdEngine) ShouldCreate(ctx entity.CreationContext) entity.CreationDecision {
	return Evaluate(e.cfg, ctx)
}

// Config 返回生效配置
func (e *ThresholdEngine) Config() Config {
	return e.cfg
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
