package completer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"z-novel-ai-agent/internal/application/agent/readiness"
	"z-novel-ai-agent/internal/domain/entity"
)

func complete(c *Completer, s entity.ExtractedSettings, history ...string) CompletionResult {
	a := readiness.NewChecker(0).Check(s)
	return c.Complete(s, a.AutoCompletable, history)
}

func TestComplete_NoSignal(t *testing.T) {
	c := New(Config{Seed: 7})
	res := complete(c, entity.ExtractedSettings{})
	assert.False(t, res.Applied)
	assert.Empty(t, res.Log)
	assert.True(t, res.Settings.IsEmpty())

	res = complete(c, entity.ExtractedSettings{}, "  ")
	assert.False(t, res.Applied)
}

func TestComplete_FillsEverythingToFullReadiness(t *testing.T) {
	c := New(Config{Seed: 42})
	s := entity.ExtractedSettings{
		Characters: []entity.CharacterProfile{{Role: "主角", Background: "黑客"}},
		World:      entity.WorldSetting{WorldType: "科幻"},
		Plot:       entity.PlotElement{Conflict: "反抗大公司"},
	}
	before := s.Clone()

	res := complete(c, s)
	require.True(t, res.Applied)
	assert.Equal(t, GenreSciFi, res.Genre)
	assert.Equal(t, before, s)

	out := res.Settings
	assert.NotEmpty(t, out.Characters[0].Name)
	assert.Equal(t, "黑客", out.Characters[0].Background)
	assert.Equal(t, "反抗大公司", out.Plot.Conflict)
	assert.Equal(t, "未来", out.World.Era)
	assert.Contains(t, rolePrototypes[0].personality, out.Characters[0].Personality)

	a := readiness.NewChecker(0.7).Check(out)
	assert.InDelta(t, 1.0, a.Score, 1e-9)
	assert.Empty(t, a.AutoCompletable)

	for _, e := range res.Log {
		assert.NotEmpty(t, e.Path)
		assert.NotEmpty(t, e.Value)
	}
}

func TestComplete_Deterministic(t *testing.T) {
	s := entity.ExtractedSettings{World: entity.WorldSetting{WorldType: "奇幻"}}

	a := complete(New(Config{Seed: 1}), s)
	b := complete(New(Config{Seed: 1}), s)
	assert.Equal(t, a, b)
}

func TestComplete_AddsProtagonist(t *testing.T) {
	c := New(Config{Seed: 3})
	res := complete(c, entity.ExtractedSettings{World: entity.WorldSetting{WorldType: "历史"}})

	require.Len(t, res.Settings.Characters, 1)
	p := res.Settings.Characters[0]
	assert.Equal(t, "主角", p.Role)
	assert.Contains(t, defaults[GenreHistorical].names, p.Name)
	assert.Equal(t, "古代", res.Settings.World.Era)
}

func TestComplete_GenreFromHistory(t *testing.T) {
	c := New(Config{Seed: 3, DefaultGenre: string(GenreUrban)})

	res := complete(c, entity.ExtractedSettings{}, "我想写一个关于黑客复仇的故事")
	assert.Equal(t, GenreSciFi, res.Genre)
	assert.Equal(t, "为了复仇踏上征途", res.Settings.Plot.Conflict)

	res = complete(c, entity.ExtractedSettings{}, "随便聊聊")
	assert.Equal(t, GenreUrban, res.Genre)
	assert.Equal(t, defaults[GenreUrban].conflict, res.Settings.Plot.Conflict)
}

func TestComplete_KeepsExistingValues(t *testing.T) {
	c := New(Config{})
	s := entity.ExtractedSettings{
		Characters: []entity.CharacterProfile{{Name: "林风", Role: "反派", Personality: "阴沉"}},
		Style:      entity.StylePreference{Tone: "黑暗"},
	}
	res := complete(c, s)
	assert.Equal(t, "林风", res.Settings.Characters[0].Name)
	assert.Equal(t, "阴沉", res.Settings.Characters[0].Personality)
	assert.Equal(t, "黑暗", res.Settings.Style.Tone)
	assert.Equal(t, GenreFantasy, res.Genre)
}

func TestComplete_RolePrototype(t *testing.T) {
	c := New(Config{Seed: 9})
	s := entity.ExtractedSettings{Characters: []entity.CharacterProfile{{Name: "墨", Role: "反派"}}}
	res := complete(c, s)
	assert.Contains(t, rolePrototypes[1].personality, res.Settings.Characters[0].Personality)
}
