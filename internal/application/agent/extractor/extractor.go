// Package extractor 基于规则的设定抽取
package extractor

import (
	"strconv"
	"strings"

	"z-novel-ai-agent/internal/application/agent/agentutil"
	"z-novel-ai-agent/internal/domain/entity"
)

// DefaultConfidence 规则抽取的固定置信度
const DefaultConfidence = 0.7

// ExtractionResult 抽取结果
type ExtractionResult struct {
	// Settings 增量模式下为合并后的设定，否则等于 Delta
	Settings   entity.ExtractedSettings `json:"settings"`
	Delta      entity.ExtractedSettings `json:"delta"`
	Confidence float64                  `json:"confidence"`
	// Fields 命中的字段路径，如 character.name
	Fields []string `json:"fields,omitempty"`
}

// SettingExtractor 设定抽取能力接口
type SettingExtractor interface {
	Extract(utterance string, existing entity.ExtractedSettings, incremental bool) ExtractionResult
}

// Extractor 规则抽取器，无状态，可并发使用
type Extractor struct {
	confidence float64
}

// New 创建抽取器，confidence <= 0 时使用默认值
func New(confidence float64) *Extractor {
	if confidence <= 0 || confidence > 1 {
		confidence = DefaultConfidence
	}
	return &Extractor{confidence: confidence}
}

// Extract 从一句话中抽取设定增量。任何输入都不会报错，未命中的字段保持为空。
func (e *Extractor) Extract(utterance string, existing entity.ExtractedSettings, incremental bool) ExtractionResult {
	folded := agentutil.Fold(utterance)
	lower := strings.ToLower(folded)

	var fields []string
	mark := func(path string, ok bool) {
		if ok {
			fields = append(fields, path)
		}
	}

	var delta entity.ExtractedSettings

	ch := extractCharacter(folded, lower, mark)
	if !ch.IsEmpty() {
		delta.Characters = []entity.CharacterProfile{ch}
	}
	delta.World = extractWorld(folded, lower, mark)
	delta.Plot = extractPlot(folded, lower, mark)
	delta.Style = extractStyle(folded, lower, mark)

	res := ExtractionResult{
		Settings:   delta,
		Delta:      delta,
		Confidence: e.confidence,
		Fields:     fields,
	}
	if incremental {
		res.Settings = existing.Merge(delta)
	}
	return res
}

func extractCharacter(folded, lower string, mark func(string, bool)) entity.CharacterProfile {
	var c entity.CharacterProfile

	if m := reName.FindStringSubmatch(folded); m != nil {
		c.Name = strings.TrimSpace(m[1])
	} else if m := reNameEnglish.FindStringSubmatch(folded); m != nil {
		c.Name = m[1]
	}
	mark("character.name", c.Name != "")

	c.Age = extractAge(folded)
	mark("character.age", c.Age > 0)

	if roles := matchLexicon(lower, roleLexicon); len(roles) > 0 {
		c.Role = roles[0]
	}
	mark("character.role", c.Role != "")

	if m := reOccupation.FindStringSubmatch(folded); m != nil {
		c.Background = agentutil.TrimPunct(m[1])
	}
	mark("character.background", c.Background != "")

	if m := rePersonality.FindStringSubmatch(folded); m != nil {
		c.Personality = agentutil.TrimPunct(m[1])
	} else if traits := matchLexicon(lower, personalityLexicon); len(traits) > 0 {
		c.Personality = strings.Join(traits, "，")
	}
	mark("character.personality", c.Personality != "")

	if m := reAppearance.FindStringSubmatch(folded); m != nil {
		c.Appearance = agentutil.TrimPunct(m[1])
	}
	mark("character.appearance", c.Appearance != "")

	if m := reAbilities.FindStringSubmatch(folded); m != nil {
		c.Abilities = entity.SplitList(strings.ReplaceAll(m[1], "和", ","))
	}
	mark("character.abilities", len(c.Abilities) > 0)

	return c
}

func extractAge(folded string) int {
	if m := reAgeDigits.FindStringSubmatch(folded); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n
		}
	}
	if m := reAgeHan.FindStringSubmatch(folded); m != nil {
		return parseChineseNumber(m[1])
	}
	return 0
}

func extractWorld(folded, lower string, mark func(string, bool)) entity.WorldSetting {
	var w entity.WorldSetting

	w.WorldType = strings.Join(matchLexicon(lower, worldTypeLexicon), "、")
	mark("world.world_type", w.WorldType != "")

	if eras := matchLexicon(lower, eraLexicon); len(eras) > 0 {
		w.Era = strings.Join(eras, "、")
	} else if m := reYear.FindStringSubmatch(folded); m != nil {
		w.Era = m[1] + "年"
	}
	mark("world.era", w.Era != "")

	if m := reMagicSystem.FindStringSubmatch(folded); m != nil {
		w.MagicSystem = agentutil.TrimPunct(m[1])
	} else if magic := matchLexicon(lower, magicLexicon); len(magic) > 0 {
		w.MagicSystem = magic[0]
	}
	mark("world.magic_system", w.MagicSystem != "")

	if tech := matchLexicon(lower, technologyLexicon); len(tech) > 0 {
		w.TechnologyLevel = tech[0]
	}
	mark("world.technology_level", w.TechnologyLevel != "")

	if m := reGeography.FindStringSubmatch(folded); m != nil {
		w.Geography = agentutil.TrimPunct(m[1])
	}
	mark("world.geography", w.Geography != "")

	return w
}

func extractPlot(folded, lower string, mark func(string, bool)) entity.PlotElement {
	var p entity.PlotElement

	if m := reConflictExplicit.FindStringSubmatch(folded); m != nil {
		p.Conflict = agentutil.TrimPunct(m[1])
	} else if m := reConflictVerb.FindStringSubmatch(folded); m != nil {
		p.Conflict = agentutil.TrimPunct(m[1] + m[2])
	}
	mark("plot.conflict", p.Conflict != "")

	if m := reThemes.FindStringSubmatch(folded); m != nil {
		p.Themes = entity.SplitList(strings.ReplaceAll(m[1], "和", ","))
	} else {
		p.Themes = nilIfEmpty(matchLexicon(lower, themeLexicon))
	}
	mark("plot.themes", len(p.Themes) > 0)

	if m := reResolution.FindStringSubmatch(folded); m != nil {
		p.Resolution = agentutil.TrimPunct(m[1])
	} else if res := matchLexicon(lower, resolutionLexicon); len(res) > 0 {
		p.Resolution = res[0]
	}
	mark("plot.resolution", p.Resolution != "")

	if m := reInciting.FindStringSubmatch(folded); m != nil {
		p.IncitingIncident = agentutil.TrimPunct(m[1])
	}
	mark("plot.inciting_incident", p.IncitingIncident != "")

	return p
}

func extractStyle(folded, lower string, mark func(string, bool)) entity.StylePreference {
	var s entity.StylePreference

	s.POV = strings.Join(matchLexicon(lower, povLexicon), "、")
	mark("style.pov", s.POV != "")

	s.Tense = strings.Join(matchLexicon(lower, tenseLexicon), "、")
	mark("style.tense", s.Tense != "")

	s.Tone = strings.Join(matchLexicon(lower, toneLexicon), "、")
	mark("style.tone", s.Tone != "")

	if pacing := matchLexicon(lower, pacingLexicon); len(pacing) > 0 {
		s.Pacing = pacing[0]
	}
	mark("style.pacing", s.Pacing != "")

	if m := reWritingStyle.FindStringSubmatch(folded); m != nil {
		s.WritingStyle = agentutil.TrimPunct(m[1])
	} else if ws := matchLexicon(lower, writingStyleLexicon); len(ws) > 0 {
		s.WritingStyle = ws[0]
	}
	mark("style.writing_style", s.WritingStyle != "")

	s.Genre = nilIfEmpty(matchLexicon(lower, genreLexicon))
	mark("style.genre", len(s.Genre) > 0)

	return s
}

func nilIfEmpty(list []string) []string {
	if len(list) == 0 {
		return nil
	}
	return list
}
