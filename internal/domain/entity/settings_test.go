package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSettings() ExtractedSettings {
	return ExtractedSettings{
		Characters: []CharacterProfile{
			{Name: "Neo", Role: "主角", Personality: "胆小，犹豫", Age: 24, Abilities: []string{"黑客技术"}},
			{Role: "导师", Personality: "神秘"},
		},
		World: WorldSetting{WorldType: "科幻", Era: "未来", Locations: []string{"锡安", "母体"}},
		Plot:  PlotElement{Conflict: "反抗机器统治", Themes: []string{"自由", "觉醒"}},
		Style: StylePreference{POV: "第三人称", Tone: "黑暗", Genre: []string{"科幻"}},
	}
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, CharacterProfile{}.IsEmpty())
	assert.True(t, CharacterProfile{Name: "  "}.IsEmpty())
	assert.False(t, CharacterProfile{Age: 3}.IsEmpty())
	assert.True(t, WorldSetting{}.IsEmpty())
	assert.False(t, WorldSetting{Rules: []string{"魔法有代价"}}.IsEmpty())
	assert.True(t, PlotElement{}.IsEmpty())
	assert.True(t, StylePreference{}.IsEmpty())
	assert.True(t, ExtractedSettings{}.IsEmpty())
	assert.True(t, ExtractedSettings{Characters: []CharacterProfile{{}}}.IsEmpty())
	assert.False(t, sampleSettings().IsEmpty())
}

func TestMerge_Identity(t *testing.T) {
	x := sampleSettings()
	assert.Equal(t, x, ExtractedSettings{}.Merge(x))
	assert.Equal(t, ExtractedSettings{}, ExtractedSettings{}.Merge(ExtractedSettings{}))

	// 同一份设定里的两个相同无名角色各自保留
	twins := ExtractedSettings{Characters: []CharacterProfile{{Role: "护卫"}, {Role: "护卫"}}}
	merged := ExtractedSettings{}.Merge(twins)
	assert.Len(t, merged.Characters, 2)
	assert.Equal(t, twins, merged)
	assert.Equal(t, twins, twins.Merge(twins))
}

func TestMerge_Idempotent(t *testing.T) {
	x := sampleSettings()
	assert.Equal(t, x, x.Merge(x))
}

func TestMerge_DoesNotMutateOperands(t *testing.T) {
	a := sampleSettings()
	b := ExtractedSettings{
		Characters: []CharacterProfile{{Name: "Neo", Abilities: []string{"子弹时间"}}},
		World:      WorldSetting{Locations: []string{"地下城"}},
	}
	before := a.Clone()
	beforeB := b.Clone()

	out := a.Merge(b)
	out.Characters[0].Abilities[0] = "changed"
	out.World.Locations[0] = "changed"

	assert.Equal(t, before, a)
	assert.Equal(t, beforeB, b)
}

func TestMerge_ScalarAndCollection(t *testing.T) {
	a := ExtractedSettings{
		World: WorldSetting{WorldType: "奇幻", Era: "中世纪", Factions: []string{"王国"}},
		Style: StylePreference{Tone: "轻松"},
	}
	b := ExtractedSettings{
		World: WorldSetting{Era: "古代", Factions: []string{"王国", "教会"}},
		Style: StylePreference{Tone: ""},
	}
	out := a.Merge(b)
	assert.Equal(t, "奇幻", out.World.WorldType)
	assert.Equal(t, "古代", out.World.Era)
	assert.ElementsMatch(t, []string{"王国", "教会"}, out.World.Factions)
	assert.Equal(t, "轻松", out.Style.Tone)
}

func TestMerge_CharactersKeyedByName(t *testing.T) {
	a := ExtractedSettings{Characters: []CharacterProfile{{Name: "林风", Personality: "冷静"}}}
	b := ExtractedSettings{Characters: []CharacterProfile{
		{Name: "林风", Age: 18, Abilities: []string{"剑术"}},
		{Name: "苏雨", Role: "配角"},
	}}

	out := a.Merge(b)
	require.Len(t, out.Characters, 2)
	assert.Equal(t, CharacterProfile{Name: "林风", Personality: "冷静", Age: 18, Abilities: []string{"剑术"}}, out.Characters[0])
	assert.Equal(t, "苏雨", out.Characters[1].Name)
}

func TestMerge_AnonymousCharactersNeverMerged(t *testing.T) {
	a := ExtractedSettings{Characters: []CharacterProfile{{Personality: "勇敢"}}}
	b := ExtractedSettings{Characters: []CharacterProfile{{Personality: "狡猾"}, {}}}

	out := a.Merge(b)
	require.Len(t, out.Characters, 2)
	assert.Equal(t, "勇敢", out.Characters[0].Personality)
	assert.Equal(t, "狡猾", out.Characters[1].Personality)

	// 名字相同才会合并，无名角色与有名角色互不影响
	out = out.Merge(ExtractedSettings{Characters: []CharacterProfile{{Name: "阿狸", Personality: "勇敢"}}})
	assert.Len(t, out.Characters, 3)
}

func TestUnion(t *testing.T) {
	assert.Nil(t, union(nil, nil))
	assert.Nil(t, union([]string{" ", ""}, nil))
	assert.Equal(t, []string{"a", "b", "c"}, union([]string{"a", " b", "a"}, []string{"c", "b"}))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"剑术", "轻功", "医术", "毒术"}, SplitList("剑术、轻功，医术;毒术,剑术"))
	assert.Nil(t, SplitList(""))
}

func TestFieldAccessors(t *testing.T) {
	var c CharacterProfile
	assert.True(t, c.SetField(FieldAge, "18岁"))
	assert.Equal(t, "18", c.Field(FieldAge))
	assert.False(t, c.SetField(FieldAge, "很老"))
	assert.True(t, c.SetField(FieldAbilities, "剑术、轻功"))
	assert.Equal(t, "剑术、轻功", c.Field(FieldAbilities))
	assert.False(t, c.SetField("unknown", "x"))

	var s StylePreference
	assert.True(t, s.SetField(FieldTone, " 幽默 "))
	assert.Equal(t, "幽默", s.Tone)
}

func TestFindCharacterAndProtagonist(t *testing.T) {
	s := sampleSettings()
	assert.Equal(t, 0, s.FindCharacter("Neo"))
	assert.Equal(t, -1, s.FindCharacter("Trinity"))
	assert.Equal(t, -1, s.FindCharacter(""))
	assert.Equal(t, 0, s.Protagonist())
	assert.Equal(t, -1, ExtractedSettings{}.Protagonist())
}

func TestToMap_OmitsEmpty(t *testing.T) {
	assert.Empty(t, ExtractedSettings{}.ToMap())

	m := ExtractedSettings{
		Characters: []CharacterProfile{{}, {Name: "Neo", Age: 24}},
		Style:      StylePreference{POV: "第一人称"},
	}.ToMap()

	require.Contains(t, m, "characters")
	chars := m["characters"].([]map[string]any)
	require.Len(t, chars, 1)
	assert.Equal(t, "Neo", chars[0]["name"])
	assert.Equal(t, 24, chars[0]["age"])
	assert.NotContains(t, m, "world")
	assert.NotContains(t, m, "plot")
	assert.Equal(t, map[string]any{"pov": "第一人称"}, m["style"])
}

func TestSettings_JSONRoundTrip(t *testing.T) {
	x := sampleSettings()
	raw, err := json.Marshal(x)
	require.NoError(t, err)

	var got ExtractedSettings
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, x, got)
}

func TestAgentState(t *testing.T) {
	st := NewAgentState("s1")
	for _, u := range []string{"a", "b", "c", "d"} {
		st.AppendHistory(u, 3)
	}
	assert.Equal(t, []string{"b", "c", "d"}, st.History)

	st.MarkCreationStarted()
	st.MarkCreationStarted()
	assert.True(t, st.CreationStarted)

	cp := st.Clone()
	cp.History[0] = "x"
	assert.Equal(t, "b", st.History[0])
}
