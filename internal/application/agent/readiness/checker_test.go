package readiness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"z-novel-ai-agent/internal/domain/entity"
)

func fullSettings() entity.ExtractedSettings {
	return entity.ExtractedSettings{
		Characters: []entity.CharacterProfile{{
			Name: "林风", Role: "主角", Personality: "冷静", Background: "孤儿", Appearance: "清瘦",
		}},
		World: entity.WorldSetting{WorldType: "仙侠", Era: "古代", TechnologyLevel: "冷兵器", Geography: "青云山"},
		Plot: entity.PlotElement{
			Conflict: "寻找灭门真凶", Themes: []string{"成长"}, IncitingIncident: "师门被灭", Resolution: "大仇得报",
		},
		Style: entity.StylePreference{POV: "第三人称", Tone: "热血", Tense: "过去时", Pacing: "快节奏"},
	}
}

func TestTotalRequiredFields(t *testing.T) {
	assert.Equal(t, 17, TotalRequiredFields())
}

func TestCheck_Empty(t *testing.T) {
	a := NewChecker(0).Check(entity.ExtractedSettings{})
	assert.False(t, a.IsReady)
	assert.Zero(t, a.Score)
	require.Len(t, a.MissingCritical, 1)
	assert.Equal(t, FieldCharacters, a.MissingCritical[0].Field)
	assert.Len(t, a.AutoCompletable, 17)
	assert.Equal(t, entity.ReadinessActionAskCharacters, a.RecommendedAction)
}

func TestCheck_FullSettingsAlwaysReady(t *testing.T) {
	for _, threshold := range []float64{0.1, 0.3, 0.7, 1.0} {
		a := NewChecker(threshold).Check(fullSettings())
		assert.InDelta(t, 1.0, a.Score, 1e-9)
		assert.True(t, a.IsReady, "min=%v", threshold)
		assert.Empty(t, a.AutoCompletable)
		assert.Equal(t, entity.ReadinessActionReady, a.RecommendedAction)
	}
}

func TestCheck_NeverReadyWithoutCharacters(t *testing.T) {
	s := fullSettings()
	s.Characters = nil

	a := NewChecker(0.01).Check(s)
	// 1 - (5+1)/17 + 0.1 + 0.1
	assert.InDelta(t, 1-6.0/17+0.2, a.Score, 1e-9)
	assert.False(t, a.IsReady)
	assert.Equal(t, entity.ReadinessActionAskCharacters, a.RecommendedAction)
}

func TestCheck_SparseSingleTrait(t *testing.T) {
	s := entity.ExtractedSettings{Characters: []entity.CharacterProfile{{Personality: "勇敢"}}}
	a := NewChecker(0).Check(s)

	assert.InDelta(t, 1-16.0/17+0.2, a.Score, 1e-9)
	assert.Less(t, a.Score, DefaultMinReadiness)
	assert.False(t, a.IsReady)
	assert.Equal(t, entity.ReadinessActionGatherMore, a.RecommendedAction)
}

func TestCheck_Bonuses(t *testing.T) {
	s := entity.ExtractedSettings{
		Characters: []entity.CharacterProfile{{Name: "A", Role: "主角"}},
		World:      entity.WorldSetting{Locations: []string{"长安"}},
		Plot:       entity.PlotElement{RisingAction: []string{"相遇"}},
	}
	a := NewChecker(0).Check(s)
	// 非必填字段不计入缺失数，但会让 world/plot 非空从而触发奖励
	assert.InDelta(t, 1-15.0/17+0.4, a.Score, 1e-9)
}

func TestCheck_Monotonic(t *testing.T) {
	c := NewChecker(0)
	s := entity.ExtractedSettings{
		Characters: []entity.CharacterProfile{{Name: "A"}},
		World:      entity.WorldSetting{WorldType: "奇幻"},
		Plot:       entity.PlotElement{Conflict: "复仇"},
	}
	steps := []func(*entity.ExtractedSettings){
		func(s *entity.ExtractedSettings) { s.Characters[0].Role = "主角" },
		func(s *entity.ExtractedSettings) { s.Characters[0].Personality = "勇敢" },
		func(s *entity.ExtractedSettings) { s.World.Era = "中世纪" },
		func(s *entity.ExtractedSettings) { s.Plot.Themes = []string{"成长"} },
		func(s *entity.ExtractedSettings) { s.Style.POV = "第一人称" },
		func(s *entity.ExtractedSettings) { s.Style.Tone = "热血" },
		func(s *entity.ExtractedSettings) { s.Characters[0].Background = "孤儿" },
		func(s *entity.ExtractedSettings) { s.World.Geography = "北境" },
	}

	prev := c.Check(s).Score
	for i, step := range steps {
		step(&s)
		cur := c.Check(s).Score
		assert.GreaterOrEqual(t, cur, prev, "step %d", i)
		prev = cur
	}
}

func TestNextQuestion(t *testing.T) {
	c := NewChecker(0)

	q, ok := NextQuestion(c.Check(entity.ExtractedSettings{}))
	require.True(t, ok)
	assert.Equal(t, FieldCharacters, q.Field)

	s := fullSettings()
	s.Style.Pacing = ""
	s.Plot.Themes = nil
	q, ok = NextQuestion(c.Check(s))
	require.True(t, ok)
	assert.Equal(t, entity.FieldThemes, q.Field)
	assert.Equal(t, 2, q.Priority)

	_, ok = NextQuestion(c.Check(fullSettings()))
	assert.False(t, ok)
}

func TestNewChecker_Defaults(t *testing.T) {
	assert.InDelta(t, DefaultMinReadiness, NewChecker(0).MinReadiness(), 1e-9)
	assert.InDelta(t, DefaultMinReadiness, NewChecker(1.5).MinReadiness(), 1e-9)
	assert.InDelta(t, 0.5, NewChecker(0.5).MinReadiness(), 1e-9)
}
