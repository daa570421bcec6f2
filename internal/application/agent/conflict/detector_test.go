package conflict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"z-novel-ai-agent/internal/domain/entity"
)

func TestDetect_Clean(t *testing.T) {
	s := entity.ExtractedSettings{
		Characters: []entity.CharacterProfile{{Name: "林风", Role: "主角", Personality: "冷静，善良", Age: 18}},
		World:      entity.WorldSetting{WorldType: "仙侠", Era: "古代"},
		Style:      entity.StylePreference{POV: "第三人称", Tense: "过去时", Tone: "热血"},
	}
	assert.Empty(t, Detect(s))
	assert.Empty(t, Detect(entity.ExtractedSettings{}))
}

func TestDetect_Severities(t *testing.T) {
	cases := []struct {
		name     string
		settings entity.ExtractedSettings
		typ      entity.ConflictType
		severity entity.ConflictSeverity
	}{
		{
			name:     "world type",
			settings: entity.ExtractedSettings{World: entity.WorldSetting{WorldType: "奇幻、科幻"}},
			typ:      entity.ConflictTypeWorldType,
			severity: entity.ConflictSeverityHigh,
		},
		{
			name:     "era",
			settings: entity.ExtractedSettings{World: entity.WorldSetting{Era: "古代、未来"}},
			typ:      entity.ConflictTypeEra,
			severity: entity.ConflictSeverityHigh,
		},
		{
			name:     "pov",
			settings: entity.ExtractedSettings{Style: entity.StylePreference{POV: "第一人称、第三人称"}},
			typ:      entity.ConflictTypePOV,
			severity: entity.ConflictSeverityHigh,
		},
		{
			name:     "tense",
			settings: entity.ExtractedSettings{Style: entity.StylePreference{Tense: "过去时和现在时"}},
			typ:      entity.ConflictTypeTense,
			severity: entity.ConflictSeverityHigh,
		},
		{
			name: "personality",
			settings: entity.ExtractedSettings{Characters: []entity.CharacterProfile{
				{Name: "Neo", Personality: "胆小，犹豫，变得更加勇敢"},
			}},
			typ:      entity.ConflictTypePersonality,
			severity: entity.ConflictSeverityMedium,
		},
		{
			name: "magic ability in sci-fi world",
			settings: entity.ExtractedSettings{
				Characters: []entity.CharacterProfile{{Name: "Neo", Abilities: []string{"火系魔法"}}},
				World:      entity.WorldSetting{WorldType: "科幻"},
			},
			typ:      entity.ConflictTypeAbility,
			severity: entity.ConflictSeverityMedium,
		},
		{
			name: "tone vs genre",
			settings: entity.ExtractedSettings{Style: entity.StylePreference{
				Tone: "轻松", Genre: []string{"恐怖"},
			}},
			typ:      entity.ConflictTypeToneGenre,
			severity: entity.ConflictSeverityLow,
		},
		{
			name: "child mentor",
			settings: entity.ExtractedSettings{Characters: []entity.CharacterProfile{
				{Name: "小明", Role: "导师", Age: 8},
			}},
			typ:      entity.ConflictTypeAgeRole,
			severity: entity.ConflictSeverityLow,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Detect(tc.settings)
			require.Len(t, got, 1)
			assert.Equal(t, tc.typ, got[0].Type)
			assert.Equal(t, tc.severity, got[0].Severity)
			assert.NotEmpty(t, got[0].Description)
			assert.NotEmpty(t, got[0].Suggestion)
		})
	}
}

func TestDetect_MagicAllowedWithMagicSystem(t *testing.T) {
	s := entity.ExtractedSettings{
		Characters: []entity.CharacterProfile{{Name: "Neo", Abilities: []string{"魔法"}, Age: 300}},
		World:      entity.WorldSetting{WorldType: "奇幻"},
	}
	assert.Empty(t, Detect(s))

	s.World = entity.WorldSetting{WorldType: "都市", MagicSystem: "异能觉醒"}
	assert.Empty(t, Detect(s))

	s.World = entity.WorldSetting{WorldType: "都市"}
	got := Detect(s)
	require.Len(t, got, 2)
	assert.Equal(t, entity.ConflictTypeAbility, got[0].Type)
	assert.Equal(t, entity.ConflictTypeAgeRole, got[1].Type)
}

func TestDetect_Pure(t *testing.T) {
	s := entity.ExtractedSettings{
		Characters: []entity.CharacterProfile{
			{Name: "A", Personality: "勇敢又胆小，内向外向", Role: "国王", Age: 6},
			{Name: "B", Personality: "乐观悲观"},
		},
		World: entity.WorldSetting{WorldType: "历史、都市、科幻", Era: "远古与现代"},
		Style: entity.StylePreference{POV: "first person and third person", Tone: "黑暗", Genre: []string{"童话"}},
	}
	before := s.Clone()

	first := Detect(s)
	second := Detect(s)
	assert.Equal(t, first, second)
	assert.ElementsMatch(t, first, second)
	assert.Equal(t, before, s)
	assert.True(t, HasHighSeverity(first))

	counts := CountBySeverity(first)
	assert.Positive(t, counts[entity.ConflictSeverityHigh])
	assert.Positive(t, counts[entity.ConflictSeverityMedium])
	assert.Positive(t, counts[entity.ConflictSeverityLow])
}

func TestDetectChange(t *testing.T) {
	existing := entity.ExtractedSettings{
		Characters: []entity.CharacterProfile{{Name: "Neo", Personality: "胆小"}},
		World:      entity.WorldSetting{WorldType: "奇幻", Era: "古代"},
	}
	incoming := entity.ExtractedSettings{
		Characters: []entity.CharacterProfile{{Name: "Neo", Personality: "勇敢"}},
		World:      entity.WorldSetting{WorldType: "科幻", Era: "未来"},
	}

	got := DetectChange(existing, incoming)
	require.Len(t, got, 3)
	assert.Equal(t, entity.ConflictTypeWorldType, got[0].Type)
	assert.Equal(t, "奇幻", got[0].OriginalValue)
	assert.Equal(t, "科幻", got[0].NewValue)
	assert.Equal(t, entity.ConflictSeverityHigh, got[0].Severity)
	assert.Equal(t, entity.ConflictTypeEra, got[1].Type)
	assert.Equal(t, entity.ConflictTypePersonality, got[2].Type)

	assert.Empty(t, DetectChange(existing, existing))
	assert.Empty(t, DetectChange(entity.ExtractedSettings{}, incoming))
	assert.Empty(t, DetectChange(existing, entity.ExtractedSettings{World: entity.WorldSetting{WorldType: "奇幻、魔幻"}}))
}
