package decision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"z-novel-ai-agent/internal/domain/entity"
)

func creationCtx(input string, score float64, turn int, created bool) entity.CreationContext {
	return entity.CreationContext{
		UserInput:        input,
		Readiness:        entity.ReadinessAssessment{Score: score},
		TurnCount:        turn,
		HasCreatedBefore: created,
	}
}

func TestEvaluate_RuleOrder(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		name       string
		ctx        entity.CreationContext
		create     bool
		confidence float64
		trigger    entity.CreationTrigger
		strategy   entity.CreationStrategy
	}{
		{"explicit beats low score", creationCtx("可以开始了", 0.1, 1, false), true, 0.95, entity.TriggerExplicitRequest, entity.StrategyOutline},
		{"explicit english", creationCtx("OK, start writing", 0, 1, false), true, 0.95, entity.TriggerExplicitRequest, entity.StrategyOutline},
		{"continue after creation", creationCtx("继续", 0.1, 5, true), true, 0.95, entity.TriggerUserContinue, entity.StrategyContinue},
		{"continue without creation ignored", creationCtx("继续", 0.1, 1, false), false, 0.9, entity.TriggerNone, entity.StrategyOutline},
		{"ideal threshold on first turn", creationCtx("主角叫Neo", 0.75, 1, false), true, 0.85, entity.TriggerReadinessThreshold, entity.StrategyOutline},
		{"min threshold needs two turns", creationCtx("主角叫Neo", 0.4, 1, false), false, 0.6, entity.TriggerNone, entity.StrategyOutline},
		{"min threshold at turn two", creationCtx("主角叫Neo", 0.4, 2, false), true, 0.7, entity.TriggerReadinessThreshold, entity.StrategyOutline},
		{"forced at turn eight", creationCtx("嗯", 0.05, 8, false), true, 0.5, entity.TriggerForcedTimeout, entity.StrategyOutline},
		{"not enough", creationCtx("嗯", 0.2, 3, false), false, 0.8, entity.TriggerNone, entity.StrategyOutline},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Evaluate(cfg, tc.ctx)
			assert.Equal(t, tc.create, d.ShouldCreate)
			assert.InDelta(t, tc.confidence, d.Confidence, 1e-9)
			assert.Equal(t, tc.trigger, d.Trigger)
			assert.Equal(t, tc.strategy, d.Strategy)
			assert.NotEmpty(t, d.Reason)
		})
	}
}

func TestEvaluate_PlainWriteIsNotExplicit(t *testing.T) {
	d := Evaluate(DefaultConfig(), creationCtx("我想写个关于勇敢骑士的故事", 0.259, 1, false))
	assert.False(t, d.ShouldCreate)
	assert.Equal(t, entity.TriggerNone, d.Trigger)
}

func TestEvaluate_SuggestedLength(t *testing.T) {
	cfg := DefaultConfig()
	d := Evaluate(cfg, creationCtx("开始写吧", 0.5, 2, false))
	assert.Equal(t, 800, d.SuggestedLength)

	d = Evaluate(cfg, creationCtx("继续", 0.5, 4, true))
	assert.Equal(t, 2000, d.SuggestedLength)

	cfg.Lengths = map[entity.CreationStrategy]int{entity.StrategyOutline: 500}
	d = Evaluate(cfg, creationCtx("开始写吧", 0.5, 2, false))
	assert.Equal(t, 500, d.SuggestedLength)
}

func TestSelectStrategy(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		input   string
		created bool
		want    entity.CreationStrategy
	}{
		{"开始写", false, entity.StrategyOutline},
		{"开始写", true, entity.StrategyContinue},
		{"重写这一章", true, entity.StrategyRewrite},
		{"把这段扩写一下", true, entity.StrategyExpand},
		{"展开讲讲", false, entity.StrategyExpand},
		{"直接生成全文", false, entity.StrategyFull},
		{"接着写", true, entity.StrategyContinue},
		{"Rewrite it", true, entity.StrategyRewrite},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, SelectStrategy(cfg, tc.input, tc.created))
		})
	}
}

func TestThresholdEngine_ConversationFlow(t *testing.T) {
	e := NewThresholdEngine(DefaultConfig())

	// 第一轮：只有世界观
	d := e.ShouldCreate(creationCtx("写一个科幻故事", 0.16, 1, false))
	assert.False(t, d.ShouldCreate)

	// 第二轮：主角与冲突补齐后超过最低阈值
	d = e.ShouldCreate(creationCtx("主角是个黑客，要反抗大公司", 0.635, 2, false))
	require.True(t, d.ShouldCreate)
	assert.InDelta(t, 0.7, d.Confidence, 1e-9)
	assert.Equal(t, entity.TriggerReadinessThreshold, d.Trigger)
	assert.Equal(t, entity.StrategyOutline, d.Strategy)
}

func TestAdaptiveEngine_RaisesThreshold(t *testing.T) {
	e := NewAdaptiveEngine(DefaultConfig())
	assert.InDelta(t, 0.3, e.Threshold(), 1e-9)

	e.UpdateSatisfaction(0.9)
	e.UpdateSatisfaction(0.8)
	assert.InDelta(t, 0.3, e.Threshold(), 1e-9, "样本不足时不调整")

	got := e.UpdateSatisfaction(0.85)
	assert.InDelta(t, 0.35, got, 1e-9)
	assert.InDelta(t, 0.35, e.Threshold(), 1e-9)

	// 调整后的阈值参与评估：0.32 已不满足最低阈值
	d := e.ShouldCreate(creationCtx("嗯", 0.32, 3, false))
	assert.False(t, d.ShouldCreate)
	assert.InDelta(t, 0.3, e.Config().MinThreshold, 1e-9)
}

func TestAdaptiveEngine_Bounds(t *testing.T) {
	e := NewAdaptiveEngine(DefaultConfig())
	for i := 0; i < 30; i++ {
		e.UpdateSatisfaction(1)
	}
	assert.InDelta(t, 0.7, e.Threshold(), 1e-9)
	assert.Len(t, e.Scores(), 10)

	for i := 0; i < 30; i++ {
		e.UpdateSatisfaction(0)
	}
	assert.InDelta(t, 0.3, e.Threshold(), 1e-9)
}

func TestAdaptiveEngine_Decreases(t *testing.T) {
	e := NewAdaptiveEngine(DefaultConfig())
	e.Restore(nil, 0.5)
	e.UpdateSatisfaction(0.2)
	e.UpdateSatisfaction(0.3)
	got := e.UpdateSatisfaction(0.1)
	assert.InDelta(t, 0.45, got, 1e-9)

	// 最近三次仍包含低分样本，再下调一次
	got = e.UpdateSatisfaction(0.6)
	assert.InDelta(t, 0.4, got, 1e-9)

	// 中间区间保持不变
	e.UpdateSatisfaction(0.6)
	got = e.UpdateSatisfaction(0.6)
	assert.InDelta(t, 0.4, got, 1e-9)
}
