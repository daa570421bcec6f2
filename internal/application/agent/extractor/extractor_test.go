package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"z-novel-ai-agent/internal/domain/entity"
)

func TestExtract_Character(t *testing.T) {
	e := New(0)
	res := e.Extract("主角叫林风，今年十八岁，性格冷静，擅长剑术和轻功", entity.ExtractedSettings{}, false)

	require.Len(t, res.Delta.Characters, 1)
	c := res.Delta.Characters[0]
	assert.Equal(t, "林风", c.Name)
	assert.Equal(t, 18, c.Age)
	assert.Equal(t, "主角", c.Role)
	assert.Equal(t, "冷静", c.Personality)
	assert.Equal(t, []string{"剑术", "轻功"}, c.Abilities)
	assert.Contains(t, res.Fields, "character.name")
	assert.Contains(t, res.Fields, "character.age")
	assert.InDelta(t, DefaultConfidence, res.Confidence, 1e-9)
}

func TestExtract_EnglishName(t *testing.T) {
	res := New(0.8).Extract("The hero is named Neo, 24岁", entity.ExtractedSettings{}, false)
	require.Len(t, res.Delta.Characters, 1)
	assert.Equal(t, "Neo", res.Delta.Characters[0].Name)
	assert.Equal(t, 24, res.Delta.Characters[0].Age)
	assert.InDelta(t, 0.8, res.Confidence, 1e-9)
}

func TestExtract_Occupation(t *testing.T) {
	res := New(0).Extract("主角是个黑客，要反抗大公司", entity.ExtractedSettings{}, false)
	require.Len(t, res.Delta.Characters, 1)
	assert.Equal(t, "主角", res.Delta.Characters[0].Role)
	assert.Equal(t, "黑客", res.Delta.Characters[0].Background)
	assert.Equal(t, "反抗大公司", res.Delta.Plot.Conflict)
}

func TestExtract_SparseUtterance(t *testing.T) {
	res := New(0).Extract("我想写个关于勇敢骑士的故事", entity.ExtractedSettings{}, false)

	require.Len(t, res.Delta.Characters, 1)
	assert.Equal(t, entity.CharacterProfile{Personality: "勇敢"}, res.Delta.Characters[0])
	assert.True(t, res.Delta.World.IsEmpty())
	assert.True(t, res.Delta.Plot.IsEmpty())
	assert.True(t, res.Delta.Style.IsEmpty())
	assert.Equal(t, []string{"character.personality"}, res.Fields)
}

func TestExtract_World(t *testing.T) {
	res := New(0).Extract("这是一个中世纪的奇幻世界，有魔法", entity.ExtractedSettings{}, false)
	w := res.Delta.World
	assert.Equal(t, "奇幻", w.WorldType)
	assert.Equal(t, "中世纪", w.Era)
	assert.Equal(t, "魔法", w.MagicSystem)
	assert.Empty(t, res.Delta.Characters)
	assert.Equal(t, []string{"奇幻"}, res.Delta.Style.Genre)
}

func TestExtract_Plot(t *testing.T) {
	res := New(0).Extract("冲突是人类与AI的战争，主题是成长和友情，结局是大团圆", entity.ExtractedSettings{}, false)
	p := res.Delta.Plot
	assert.Equal(t, "人类与AI的战争", p.Conflict)
	assert.Equal(t, []string{"成长", "友情"}, p.Themes)
	assert.Equal(t, "大团圆", p.Resolution)
}

func TestExtract_Style(t *testing.T) {
	res := New(0).Extract("用第一人称，过去时，基调轻松幽默，快节奏", entity.ExtractedSettings{}, false)
	s := res.Delta.Style
	assert.Equal(t, "第一人称", s.POV)
	assert.Equal(t, "过去时", s.Tense)
	assert.Equal(t, "轻松、幽默", s.Tone)
	assert.Equal(t, "快节奏", s.Pacing)
	assert.Empty(t, res.Delta.Characters)
}

func TestExtract_Incremental(t *testing.T) {
	existing := entity.ExtractedSettings{
		Characters: []entity.CharacterProfile{{Name: "林风", Role: "主角"}},
		World:      entity.WorldSetting{WorldType: "仙侠"},
	}
	before := existing.Clone()

	res := New(0).Extract("主角叫林风，性格冷静", existing, true)
	require.Len(t, res.Settings.Characters, 1)
	assert.Equal(t, "冷静", res.Settings.Characters[0].Personality)
	assert.Equal(t, "仙侠", res.Settings.World.WorldType)
	assert.Equal(t, before, existing)

	plain := New(0).Extract("主角叫林风，性格冷静", existing, false)
	assert.Equal(t, plain.Delta, plain.Settings)
	assert.Empty(t, plain.Settings.World.WorldType)
}

func TestExtract_GarbageNeverFails(t *testing.T) {
	for _, in := range []string{"", "!!!@@@###", "，，，。。。", "岁岁岁", "叫"} {
		res := New(0).Extract(in, entity.ExtractedSettings{}, true)
		assert.True(t, res.Delta.IsEmpty(), in)
	}
}

func TestParseChineseNumber(t *testing.T) {
	cases := map[string]int{
		"十":    10,
		"十八":   18,
		"二十":   20,
		"两百":   200,
		"一百零五": 105,
		"一百二十": 120,
		"七":    7,
		"百":    100,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseChineseNumber(in), in)
	}
}
