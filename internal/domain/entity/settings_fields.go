package entity

import (
	"strconv"
	"strings"
)

// 字段名常量，与 JSON 字段保持一致
const (
	FieldName          = "name"
	FieldRole          = "role"
	FieldPersonality   = "personality"
	FieldBackground    = "background"
	FieldAppearance    = "appearance"
	FieldAge           = "age"
	FieldAbilities     = "abilities"
	FieldRelationships = "relationships"

	FieldWorldType       = "world_type"
	FieldEra             = "era"
	FieldMagicSystem     = "magic_system"
	FieldTechnologyLevel = "technology_level"
	FieldGeography       = "geography"
	FieldLocations       = "locations"
	FieldRules           = "rules"
	FieldFactions        = "factions"

	FieldIncitingIncident = "inciting_incident"
	FieldConflict         = "conflict"
	FieldClimax           = "climax"
	FieldResolution       = "resolution"
	FieldRisingAction     = "rising_action"
	FieldThemes           = "themes"
	FieldSubplotPoints    = "subplot_points"

	FieldPOV          = "pov"
	FieldTense        = "tense"
	FieldTone         = "tone"
	FieldPacing       = "pacing"
	FieldWritingStyle = "writing_style"
	FieldGenre        = "genre"
)

// listSeparators 列表字段赋值时使用的分隔符
var listSeparators = strings.NewReplacer("，", ",", "、", ",", "；", ",", ";", ",")

// Field 读取角色字段的文本值，集合字段以顿号连接
func (c CharacterProfile) Field(name string) string {
	switch name {
	case FieldName:
		return c.Name
	case FieldRole:
		return c.Role
	case FieldPersonality:
		return c.Personality
	case FieldBackground:
		return c.Background
	case FieldAppearance:
		return c.Appearance
	case FieldAge:
		if c.Age > 0 {
			return strconv.Itoa(c.Age)
		}
		return ""
	case FieldAbilities:
		return strings.Join(c.Abilities, "、")
	case FieldRelationships:
		return strings.Join(c.Relationships, "、")
	}
	return ""
}

// SetField 设置角色字段，字段名未知时返回 false
func (c *CharacterProfile) SetField(name, value string) bool {
	value = strings.TrimSpace(value)
	switch name {
	case FieldName:
		c.Name = value
	case FieldRole:
		c.Role = value
	case FieldPersonality:
		c.Personality = value
	case FieldBackground:
		c.Background = value
	case FieldAppearance:
		c.Appearance = value
	case FieldAge:
		n, err := strconv.Atoi(strings.TrimSuffix(value, "岁"))
		if err != nil || n <= 0 {
			return false
		}
		c.Age = n
	case FieldAbilities:
		c.Abilities = SplitList(value)
	case FieldRelationships:
		c.Relationships = SplitList(value)
	default:
		return false
	}
	return true
}

// Field 读取世界观字段
func (w WorldSetting) Field(name string) string {
	switch name {
	case FieldWorldType:
		return w.WorldType
	case FieldEra:
		return w.Era
	case FieldMagicSystem:
		return w.MagicSystem
	case FieldTechnologyLevel:
		return w.TechnologyLevel
	case FieldGeography:
		return w.Geography
	case FieldLocations:
		return strings.Join(w.Locations, "、")
	case FieldRules:
		return strings.Join(w.Rules, "、")
	case FieldFactions:
		return strings.Join(w.Factions, "、")
	}
	return ""
}

// SetField 设置世界观字段
func (w *WorldSetting) SetField(name, value string) bool {
	value = strings.TrimSpace(value)
	switch name {
	case FieldWorldType:
		w.WorldType = value
	case FieldEra:
		w.Era = value
	case FieldMagicSystem:
		w.MagicSystem = value
	case FieldTechnologyLevel:
		w.TechnologyLevel = value
	case FieldGeography:
		w.Geography = value
	case FieldLocations:
		w.Locations = SplitList(value)
	case FieldRules:
		w.Rules = SplitList(value)
	case FieldFactions:
		w.Factions = SplitList(value)
	default:
		return false
	}
	return true
}

// Field 读取情节字段
func (p PlotElement) Field(name string) string {
	switch name {
	case FieldIncitingIncident:
		return p.IncitingIncident
	case FieldConflict:
		return p.Conflict
	case FieldClimax:
		return p.Climax
	case FieldResolution:
		return p.Resolution
	case FieldRisingAction:
		return strings.Join(p.RisingAction, "、")
	case FieldThemes:
		return strings.Join(p.Themes, "、")
	case FieldSubplotPoints:
		return strings.Join(p.SubplotPoints, "、")
	}
	return ""
}

// SetField 设置情节字段
func (p *PlotElement) SetField(name, value string) bool {
	value = strings.TrimSpace(value)
	switch name {
	case FieldIncitingIncident:
		p.IncitingIncident = value
	case FieldConflict:
		p.Conflict = value
	case FieldClimax:
		p.Climax = value
	case FieldResolution:
		p.Resolution = value
	case FieldRisingAction:
		p.RisingAction = SplitList(value)
	case FieldThemes:
		p.Themes = SplitList(value)
	case FieldSubplotPoints:
		p.SubplotPoints = SplitList(value)
	default:
		return false
	}
	return true
}

// Field 读取文风字段
func (s StylePreference) Field(name string) string {
	switch name {
	case FieldPOV:
		return s.POV
	case FieldTense:
		return s.Tense
	case FieldTone:
		return s.Tone
	case FieldPacing:
		return s.Pacing
	case FieldWritingStyle:
		return s.WritingStyle
	case FieldGenre:
		return strings.Join(s.Genre, "、")
	}
	return ""
}

// SetField 设置文风字段
func (s *StylePreference) SetField(name, value string) bool {
	value = strings.TrimSpace(value)
	switch name {
	case FieldPOV:
		s.POV = value
	case FieldTense:
		s.Tense = value
	case FieldTone:
		s.Tone = value
	case FieldPacing:
		s.Pacing = value
	case FieldWritingStyle:
		s.WritingStyle = value
	case FieldGenre:
		s.Genre = SplitList(value)
	default:
		return false
	}
	return true
}

// SplitList 按中英文分隔符拆分为去重列表
func SplitList(value string) []string {
	return union(strings.Split(listSeparators.Replace(value), ","), nil)
}
