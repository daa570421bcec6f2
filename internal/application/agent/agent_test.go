package agent

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"z-novel-ai-agent/internal/application/agent/intent"
	"z-novel-ai-agent/internal/domain/entity"
	apperrors "z-novel-ai-agent/pkg/errors"
)

func scenarioConfig() Config {
	cfg := DefaultConfig()
	cfg.MinReadiness = 0.2
	cfg.Decision.MinThreshold = 0.2
	return cfg
}

func TestProcess_SparseFirstTurnDoesNotCreate(t *testing.T) {
	a := New("s-a", DefaultConfig())

	resp := a.Process(context.Background(), "我想写个关于勇敢骑士的故事")

	assert.False(t, resp.ShouldCreate)
	assert.Equal(t, entity.IntentCreate, resp.Metadata[MetaIntent])
	score, ok := resp.Metadata[MetaReadiness].(float64)
	require.True(t, ok)
	assert.Less(t, score, 0.3)

	d, ok := resp.Decision()
	require.True(t, ok)
	assert.Equal(t, entity.StrategyOutline, d.Strategy)
	assert.Equal(t, entity.TriggerNone, d.Trigger)
	assert.NotEmpty(t, resp.Message)

	st := a.State()
	assert.Equal(t, 1, st.TurnCount)
	assert.False(t, st.CreationStarted)
	require.Len(t, st.Settings.Characters, 1)
	assert.Equal(t, "勇敢", st.Settings.Characters[0].Personality)
}

func TestProcess_ExplicitRequestAfterSettings(t *testing.T) {
	a := New("s-b", scenarioConfig())
	ctx := context.Background()

	r1 := a.Process(ctx, "我想写个科幻小说")
	assert.False(t, r1.ShouldCreate)
	assert.Equal(t, "科幻", a.State().Settings.World.WorldType)

	r2 := a.Process(ctx, "主角是个黑客，要反抗大公司")
	assert.Equal(t, entity.IntentSetting, r2.Metadata[MetaIntent])
	assert.True(t, r2.ShouldCreate)
	d2, _ := r2.Decision()
	assert.Equal(t, entity.TriggerReadinessThreshold, d2.Trigger)
	assert.Equal(t, entity.StrategyOutline, d2.Strategy)
	assert.Equal(t, 1, d2.SuggestedChapter)

	// 创作触发后补全结果写回状态
	st := a.State()
	assert.True(t, st.CreationStarted)
	require.NotEmpty(t, st.Settings.Characters)
	assert.NotEmpty(t, st.Settings.Characters[0].Name)
	assert.Equal(t, "黑客", st.Settings.Characters[0].Background)
	assert.NotEmpty(t, st.Settings.Style.POV)

	r3 := a.Process(ctx, "可以开始了")
	require.True(t, r3.ShouldCreate)
	assert.InDelta(t, 0.95, r3.Confidence, 1e-9)
	d3, ok := r3.Decision()
	require.True(t, ok)
	assert.Equal(t, entity.TriggerExplicitRequest, d3.Trigger)
	assert.Equal(t, entity.StrategyContinue, d3.Strategy)
	assert.Equal(t, 2, d3.SuggestedChapter)

	stats := a.Stats()
	assert.Equal(t, 2, stats.Creations)
	assert.Equal(t, 2, stats.CurrentChapter)
	// 大纲 800 + 续写 2000，按计划字数累计
	assert.Equal(t, 2800, stats.TotalWords)
}

func TestProcess_ContinueSignalsAfterCreation(t *testing.T) {
	a := New("s-next", scenarioConfig())
	ctx := context.Background()

	a.Process(ctx, "我想写个科幻小说")
	require.True(t, a.Process(ctx, "主角是个黑客，要反抗大公司").ShouldCreate)

	for i, u := range []string{"下一章", "然后呢", "next chapter"} {
		resp := a.Process(ctx, u)
		assert.Equal(t, entity.IntentCreate, resp.Metadata[MetaIntent], u)
		require.True(t, resp.ShouldCreate, u)
		d, ok := resp.Decision()
		require.True(t, ok, u)
		assert.Equal(t, entity.TriggerUserContinue, d.Trigger, u)
		assert.Equal(t, entity.StrategyContinue, d.Strategy, u)
		assert.Equal(t, i+2, d.SuggestedChapter, u)
	}
}

func TestProcess_ExplicitKeywordsAreRecognized(t *testing.T) {
	ctx := context.Background()

	a := New("s-ahead", scenarioConfig())
	a.Process(ctx, "我想写个科幻小说")
	resp := a.Process(ctx, "go ahead")
	assert.Equal(t, entity.IntentCreate, resp.Metadata[MetaIntent])
	require.True(t, resp.ShouldCreate)
	d, _ := resp.Decision()
	assert.Equal(t, entity.TriggerExplicitRequest, d.Trigger)

	// 配置追加的触发词同样生效
	cfg := scenarioConfig()
	cfg.Decision.ExplicitKeywords = []string{"落笔吧"}
	b := New("s-custom", cfg)
	b.Process(ctx, "我想写个科幻小说")
	resp = b.Process(ctx, "落笔吧")
	require.True(t, resp.ShouldCreate)
	d, _ = resp.Decision()
	assert.Equal(t, entity.TriggerExplicitRequest, d.Trigger)
	assert.InDelta(t, 0.95, d.Confidence, 1e-9)
}

func TestProcess_CreationLatch(t *testing.T) {
	a := New("s-latch", scenarioConfig())
	ctx := context.Background()

	a.Process(ctx, "我想写个科幻小说")
	a.Process(ctx, "开始写吧")
	require.True(t, a.State().CreationStarted)

	for _, u := range []string{"你好", "目前有哪些设定？", "让主角更勇敢一点", "嗯"} {
		a.Process(ctx, u)
		assert.True(t, a.State().CreationStarted, u)
	}

	a.Reset()
	st := a.State()
	assert.False(t, st.CreationStarted)
	assert.Zero(t, st.TurnCount)
	assert.Equal(t, "s-latch", st.SessionID)
	assert.Zero(t, a.Stats().Creations)
}

func TestProcess_ModifyRoutesToModificationEngine(t *testing.T) {
	a := New("s-mod", DefaultConfig())
	ctx := context.Background()

	a.Process(ctx, "主角名叫Neo，性格胆小")
	resp := a.Process(ctx, "让Neo更勇敢一点")

	assert.Equal(t, entity.IntentModify, resp.Metadata[MetaIntent])
	assert.False(t, resp.ShouldCreate)
	res, ok := resp.Metadata[MetaModification].(entity.ModificationResult)
	require.True(t, ok)
	assert.True(t, res.Success)
	assert.Contains(t, a.State().Settings.Characters[0].Personality, "勇敢")
	assert.Contains(t, resp.Message, "改好了")
}

func TestProcess_QueryAndChatDoNotMutateSettings(t *testing.T) {
	a := New("s-q", DefaultConfig())
	ctx := context.Background()

	a.Process(ctx, "我想写个科幻小说")
	before := a.State().Settings

	q := a.Process(ctx, "目前有哪些设定？")
	assert.Equal(t, entity.IntentQuery, q.Metadata[MetaIntent])
	assert.Contains(t, q.Message, "科幻")
	assert.Equal(t, before, a.State().Settings)

	c := a.Process(ctx, "你好")
	assert.Equal(t, entity.IntentChat, c.Metadata[MetaIntent])
	assert.InDelta(t, 0.5, c.Confidence, 1e-9)
	assert.Equal(t, before, a.State().Settings)
	assert.Equal(t, 3, a.State().TurnCount)
}

func TestProcess_GarbledInputNeverFails(t *testing.T) {
	a := New("s-g", DefaultConfig())
	for _, u := range []string{"", "   ", "？？？", "!!!@@@###", "岁岁岁", "叫", "是个"} {
		resp := a.Process(context.Background(), u)
		assert.NotEmpty(t, resp.Message, u)
		assert.NotNil(t, resp.Metadata, u)
	}
	assert.Equal(t, 7, a.State().TurnCount)
}

type panicRecognizer struct{}

func (panicRecognizer) Recognize(string) intent.Recognition {
	panic("boom")
}

func TestProcess_RecoversPanic(t *testing.T) {
	a := New("s-p", DefaultConfig())
	a.Process(context.Background(), "我想写个科幻小说")
	before := a.State()

	a.recognizer = panicRecognizer{}
	resp := a.Process(context.Background(), "主角叫Neo")

	assert.False(t, resp.ShouldCreate)
	assert.NotEmpty(t, resp.Message)
	assert.Equal(t, before.TurnCount, a.State().TurnCount)
	assert.Equal(t, before.Settings, a.State().Settings)
}

func TestProcess_GateOnHighConflicts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GateOnHighConflicts = true
	a := New("s-gate", cfg)

	resp := a.Process(context.Background(), "世界观是奇幻和科幻混合的，开始写吧")
	assert.False(t, resp.ShouldCreate)
	assert.Positive(t, resp.Metadata[MetaHighConflicts])
	assert.False(t, a.State().CreationStarted)
}

func TestRecordSatisfaction(t *testing.T) {
	a := New("s-sat", DefaultConfig())
	a.RecordSatisfaction(0.9)
	a.RecordSatisfaction(0.8)
	threshold, adaptive := a.RecordSatisfaction(0.85)
	assert.True(t, adaptive)
	assert.InDelta(t, 0.35, threshold, 1e-9)

	cfg := DefaultConfig()
	cfg.Adaptive = false
	fixed := New("s-fixed", cfg)
	threshold, adaptive = fixed.RecordSatisfaction(0.9)
	assert.False(t, adaptive)
	assert.InDelta(t, 0.3, threshold, 1e-9)
}

func TestSnapshotRestore(t *testing.T) {
	ctx := context.Background()
	a := New("s-snap", scenarioConfig())
	a.Process(ctx, "我想写个科幻小说")
	a.Process(ctx, "主角是个黑客，要反抗大公司")
	a.RecordSatisfaction(0.9)

	raw, err := json.Marshal(a.Snapshot())
	require.NoError(t, err)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(raw, &snap))

	b := New("placeholder", scenarioConfig())
	require.NoError(t, b.Restore(snap))

	assert.Equal(t, "s-snap", b.State().SessionID)
	assert.Equal(t, a.State().TurnCount, b.State().TurnCount)
	assert.Equal(t, a.State().Settings, b.State().Settings)
	assert.True(t, b.State().CreationStarted)
	assert.Equal(t, a.Stats().CurrentChapter, b.Stats().CurrentChapter)

	// 恢复后的会话继续推进章节
	resp := b.Process(ctx, "继续")
	d, ok := resp.Decision()
	require.True(t, ok)
	assert.Equal(t, entity.TriggerUserContinue, d.Trigger)
	assert.Equal(t, 2, d.SuggestedChapter)
}

func TestRestore_RejectsCorruptedSnapshot(t *testing.T) {
	a := New("s-bad", DefaultConfig())
	a.Process(context.Background(), "我想写个科幻小说")
	before := a.State()

	bad := a.Snapshot()
	bad.State.TurnCount = -1
	err := a.Restore(bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrStateCorrupted)
	assert.Equal(t, before.TurnCount, a.State().TurnCount)

	bad = a.Snapshot()
	bad.Version = 99
	assert.Error(t, a.Restore(bad))
}
