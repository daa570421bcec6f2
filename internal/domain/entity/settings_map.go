package entity

import "strings"

// ToMap 序列化为提示词模板使用的字典结构，空字段省略。
// 该结构没有对应的反向构造函数，持久化请使用 JSON 编码。
func (s ExtractedSettings) ToMap() map[string]any {
	out := map[string]any{}

	if len(s.Characters) > 0 {
		chars := make([]map[string]any, 0, len(s.Characters))
		for _, c := range s.Characters {
			if c.IsEmpty() {
				continue
			}
			chars = append(chars, c.ToMap())
		}
		if len(chars) > 0 {
			out["characters"] = chars
		}
	}
	if m := s.World.ToMap(); len(m) > 0 {
		out["world"] = m
	}
	if m := s.Plot.ToMap(); len(m) > 0 {
		out["plot"] = m
	}
	if m := s.Style.ToMap(); len(m) > 0 {
		out["style"] = m
	}
	return out
}

func (c CharacterProfile) ToMap() map[string]any {
	m := map[string]any{}
	putString(m, "name", c.Name)
	putString(m, "role", c.Role)
	putString(m, "personality", c.Personality)
	putString(m, "background", c.Background)
	putString(m, "appearance", c.Appearance)
	if c.Age > 0 {
		m["age"] = c.Age
	}
	putList(m, "abilities", c.Abilities)
	putList(m, "relationships", c.Relationships)
	return m
}

func (w WorldSetting) ToMap() map[string]any {
	m := map[string]any{}
	putString(m, "world_type", w.WorldType)
	putString(m, "era", w.Era)
	putString(m, "magic_system", w.MagicSystem)
	putString(m, "technology_level", w.TechnologyLevel)
	putString(m, "geography", w.Geography)
	putList(m, "locations", w.Locations)
	putList(m, "rules", w.Rules)
	putList(m, "factions", w.Factions)
	return m
}

func (p PlotElement) ToMap() map[string]any {
	m := map[string]any{}
	putString(m, "inciting_incident", p.IncitingIncident)
	putString(m, "conflict", p.Conflict)
	putString(m, "climax", p.Climax)
	putString(m, "resolution", p.Resolution)
	putList(m, "rising_action", p.RisingAction)
	putList(m, "themes", p.Themes)
	putList(m, "subplot_points", p.SubplotPoints)
	return m
}

func (s StylePreference) ToMap() map[string]any {
	m := map[string]any{}
	putString(m, "pov", s.POV)
	putString(m, "tense", s.Tense)
	putString(m, "tone", s.Tone)
	putString(m, "pacing", s.Pacing)
	putString(m, "writing_style", s.WritingStyle)
	putList(m, "genre", s.Genre)
	return m
}

func putString(m map[string]any, key, value string) {
	if v := strings.TrimSpace(value); v != "" {
		m[key] = v
	}
}

func putList(m map[string]any, key string, values []string) {
	if list := union(values, nil); len(list) > 0 {
		m[key] = list
	}
}
