// Package entity 定义领域实体
package entity

import (
	"strings"
)

// SettingType 设定类别
type SettingType string

const (
	SettingTypeCharacter SettingType = "character"
	SettingTypeWorld     SettingType = "world"
	SettingTypePlot      SettingType = "plot"
	SettingTypeStyle     SettingType = "style"
)

// AllSettingTypes 固定顺序的设定类别列表
var AllSettingTypes = []SettingType{
	SettingTypeCharacter,
	SettingTypeWorld,
	SettingTypePlot,
	SettingTypeStyle,
}

// CharacterProfile 角色设定
type CharacterProfile struct {
	Name          string   `json:"name,omitempty"`
	Role          string   `json:"role,omitempty"`
	Personality   string   `json:"personality,omitempty"`
	Background    string   `json:"background,omitempty"`
	Appearance    string   `json:"appearance,omitempty"`
	Age           int      `json:"age,omitempty"` // 0 表示未设定
	Abilities     []string `json:"abilities,omitempty"`
	Relationships []string `json:"relationships,omitempty"`
}

// IsEmpty 所有字段均为空时返回 true
func (c CharacterProfile) IsEmpty() bool {
	return blank(c.Name) && blank(c.Role) && blank(c.Personality) &&
		blank(c.Background) && blank(c.Appearance) && c.Age <= 0 &&
		len(c.Abilities) == 0 && len(c.Relationships) == 0
}

// Merge 合并角色设定：标量取新值，集合取并集
func (c CharacterProfile) Merge(in CharacterProfile) CharacterProfile {
	out := CharacterProfile{
		Name:          pick(c.Name, in.Name),
		Role:          pick(c.Role, in.Role),
		Personality:   pick(c.Personality, in.Personality),
		Background:    pick(c.Background, in.Background),
		Appearance:    pick(c.Appearance, in.Appearance),
		Age:           c.Age,
		Abilities:     union(c.Abilities, in.Abilities),
		Relationships: union(c.Relationships, in.Relationships),
	}
	if in.Age > 0 {
		out.Age = in.Age
	}
	return out
}

// Clone 深拷贝
func (c CharacterProfile) Clone() CharacterProfile {
	c.Abilities = cloneStrings(c.Abilities)
	c.Relationships = cloneStrings(c.Relationships)
	return c
}

// IsProtagonist 是否为主角
func (c CharacterProfile) IsProtagonist() bool {
	r := strings.ToLower(c.Role)
	return strings.Contains(r, "主角") || strings.Contains(r, "主人公") ||
		strings.Contains(r, "protagonist") || strings.Contains(r, "hero")
}

// WorldSetting 世界观设定
type WorldSetting struct {
	WorldType       string   `json:"world_type,omitempty"`
	Era             string   `json:"era,omitempty"`
	MagicSystem     string   `json:"magic_system,omitempty"`
	TechnologyLevel string   `json:"technology_level,omitempty"`
	Geography       string   `json:"geography,omitempty"`
	Locations       []string `json:"locations,omitempty"`
	Rules           []string `json:"rules,omitempty"`
	Factions        []string `json:"factions,omitempty"`
}

// IsEmpty 所有字段均为空时返回 true
func (w WorldSetting) IsEmpty() bool {
	return blank(w.WorldType) && blank(w.Era) && blank(w.MagicSystem) &&
		blank(w.TechnologyLevel) && blank(w.Geography) &&
		len(w.Locations) == 0 && len(w.Rules) == 0 && len(w.Factions) == 0
}

// Merge 合并世界观设定
func (w WorldSetting) Merge(in WorldSetting) WorldSetting {
	return WorldSetting{
		WorldType:       pick(w.WorldType, in.WorldType),
		Era:             pick(w.Era, in.Era),
		MagicSystem:     pick(w.MagicSystem, in.MagicSystem),
		TechnologyLevel: pick(w.TechnologyLevel, in.TechnologyLevel),
		Geography:       pick(w.Geography, in.Geography),
		Locations:       union(w.Locations, in.Locations),
		Rules:           union(w.Rules, in.Rules),
		Factions:        union(w.Factions, in.Factions),
	}
}

// Clone 深拷贝
func (w WorldSetting) Clone() WorldSetting {
	w.Locations = cloneStrings(w.Locations)
	w.Rules = cloneStrings(w.Rules)
	w.Factions = cloneStrings(w.Factions)
	return w
}

// PlotElement 情节设定
type PlotElement struct {
	IncitingIncident string   `json:"inciting_incident,omitempty"`
	Conflict         string   `json:"conflict,omitempty"`
	Climax           string   `json:"climax,omitempty"`
	Resolution       string   `json:"resolution,omitempty"`
	RisingAction     []string `json:"rising_action,omitempty"`
	Themes           []string `json:"themes,omitempty"`
	SubplotPoints    []string `json:"subplot_points,omitempty"`
}

// IsEmpty 所有字段均为空时返回 true
func (p PlotElement) IsEmpty() bool {
	return blank(p.IncitingIncident) && blank(p.Conflict) && blank(p.Climax) &&
		blank(p.Resolution) && len(p.RisingAction) == 0 &&
		len(p.Themes) == 0 && len(p.SubplotPoints) == 0
}

// Merge 合并情节设定
func (p PlotElement) Merge(in PlotElement) PlotElement {
	return PlotElement{
		IncitingIncident: pick(p.IncitingIncident, in.IncitingIncident),
		Conflict:         pick(p.Conflict, in.Conflict),
		Climax:           pick(p.Climax, in.Climax),
		Resolution:       pick(p.Resolution, in.Resolution),
		RisingAction:     union(p.RisingAction, in.RisingAction),
		Themes:           union(p.Themes, in.Themes),
		SubplotPoints:    union(p.SubplotPoints, in.SubplotPoints),
	}
}

// Clone 深拷贝
func (p PlotElement) Clone() PlotElement {
	p.RisingAction = cloneStrings(p.RisingAction)
	p.Themes = cloneStrings(p.Themes)
	p.SubplotPoints = cloneStrings(p.SubplotPoints)
	return p
}

// StylePreference 文风偏好
type StylePreference struct {
	POV          string   `json:"pov,omitempty"`
	Tense        string   `json:"tense,omitempty"`
	Tone         string   `json:"tone,omitempty"`
	Pacing       string   `json:"pacing,omitempty"`
	WritingStyle string   `json:"writing_style,omitempty"`
	Genre        []string `json:"genre,omitempty"`
}

// IsEmpty 所有字段均为空时返回 true
func (s StylePreference) IsEmpty() bool {
	return blank(s.POV) && blank(s.Tense) && blank(s.Tone) &&
		blank(s.Pacing) && blank(s.WritingStyle) && len(s.Genre) == 0
}

// Merge 合并文风偏好
func (s StylePreference) Merge(in StylePreference) StylePreference {
	return StylePreference{
		POV:          pick(s.POV, in.POV),
		Tense:        pick(s.Tense, in.Tense),
		Tone:         pick(s.Tone, in.Tone),
		Pacing:       pick(s.Pacing, in.Pacing),
		WritingStyle: pick(s.WritingStyle, in.WritingStyle),
		Genre:        union(s.Genre, in.Genre),
	}
}

// Clone 深拷贝
func (s StylePreference) Clone() StylePreference {
	s.Genre = cloneStrings(s.Genre)
	return s
}

// ExtractedSettings 对话中累积的全部故事设定
type ExtractedSettings struct {
	Characters []CharacterProfile `json:"characters,omitempty"`
	World      WorldSetting       `json:"world"`
	Plot       PlotElement        `json:"plot"`
	Style      StylePreference    `json:"style"`
}

// IsEmpty 所有实体均为空时返回 true
func (s ExtractedSettings) IsEmpty() bool {
	for _, c := range s.Characters {
		if !c.IsEmpty() {
			return false
		}
	}
	return s.World.IsEmpty() && s.Plot.IsEmpty() && s.Style.IsEmpty()
}

// Merge 返回合并后的新设定，两个操作数都不会被修改。
// 同名角色按字段合并；无名角色总是作为独立角色追加，完全相同的无名角色不重复追加。
func (s ExtractedSettings) Merge(in ExtractedSettings) ExtractedSettings {
	out := ExtractedSettings{
		Characters: make([]CharacterProfile, 0, len(s.Characters)+len(in.Characters)),
		World:      s.World.Merge(in.World),
		Plot:       s.Plot.Merge(in.Plot),
		Style:      s.Style.Merge(in.Style),
	}
	for _, c := range s.Characters {
		out.Characters = append(out.Characters, c.Clone())
	}

	for _, c := range in.Characters {
		if c.IsEmpty() {
			continue
		}
		name := strings.TrimSpace(c.Name)
		if name == "" {
			if !containsIdentical(s.Characters, c) {
				out.Characters = append(out.Characters, c.Clone())
			}
			continue
		}
		if idx := indexByName(out.Characters, name); idx >= 0 {
			out.Characters[idx] = out.Characters[idx].Merge(c)
			continue
		}
		out.Characters = append(out.Characters, c.Clone())
	}

	if len(out.Characters) == 0 {
		out.Characters = nil
	}
	return out
}

// Clone 深拷贝
func (s ExtractedSettings) Clone() ExtractedSettings {
	out := ExtractedSettings{
		World: s.World.Clone(),
		Plot:  s.Plot.Clone(),
		Style: s.Style.Clone(),
	}
	if len(s.Characters) > 0 {
		out.Characters = make([]CharacterProfile, len(s.Characters))
		for i, c := range s.Characters {
			out.Characters[i] = c.Clone()
		}
	}
	return out
}

// FindCharacter 按名字查找角色，返回下标，未找到返回 -1
func (s ExtractedSettings) FindCharacter(name string) int {
	return indexByName(s.Characters, strings.TrimSpace(name))
}

// Protagonist 返回第一个主角的下标，没有则返回 -1
func (s ExtractedSettings) Protagonist() int {
	for i, c := range s.Characters {
		if c.IsProtagonist() {
			return i
		}
	}
	return -1
}

func indexByName(chars []CharacterProfile, name string) int {
	if name == "" {
		return -1
	}
	for i, c := range chars {
		if strings.TrimSpace(c.Name) == name {
			return i
		}
	}
	return -1
}

func containsIdentical(chars []CharacterProfile, c CharacterProfile) bool {
	for _, existing := range chars {
		if strings.TrimSpace(existing.Name) != "" {
			continue
		}
		if existing.Role == c.Role && existing.Personality == c.Personality &&
			existing.Background == c.Background && existing.Appearance == c.Appearance &&
			existing.Age == c.Age && sameSet(existing.Abilities, c.Abilities) &&
			sameSet(existing.Relationships, c.Relationships) {
			return true
		}
	}
	return false
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func pick(existing, incoming string) string {
	if !blank(incoming) {
		return incoming
	}
	return existing
}

// union 集合并集，保留首次出现的顺序，去除空串与重复项
func union(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, v := range list {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func sameSet(a, b []string) bool {
	ua, ub := union(a, nil), union(b, nil)
	if len(ua) != len(ub) {
		return false
	}
	set := make(map[string]struct{}, len(ua))
	for _, v := range ua {
		set[v] = struct{}{}
	}
	for _, v := range ub {
		if _, ok := set[v]; !ok {
			return false
		}
	}
	return true
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
