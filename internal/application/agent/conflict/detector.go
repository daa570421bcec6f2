// Package conflict 设定冲突检测
package conflict

import (
	"fmt"
	"strconv"
	"strings"

	"z-novel-ai-agent/internal/domain/entity"
)

// Detect 扫描完整的设定快照，返回全部冲突。
// 纯函数：不修改入参，相同输入总是得到相同顺序的结果。
func Detect(s entity.ExtractedSettings) []entity.Conflict {
	var out []entity.Conflict
	out = append(out, detectWorldType(s.World)...)
	out = append(out, detectEra(s.World)...)
	out = append(out, detectPOV(s.Style)...)
	out = append(out, detectTense(s.Style)...)
	for _, c := range s.Characters {
		out = append(out, detectPersonality(c)...)
	}
	for _, c := range s.Characters {
		out = append(out, detectAbility(c, s.World)...)
	}
	out = append(out, detectToneGenre(s)...)
	for _, c := range s.Characters {
		out = append(out, detectAgeRole(c, s.World)...)
	}
	return out
}

// DetectChange 比较已有设定与新增量，找出标量字段被跨互斥组覆盖的情况
func DetectChange(existing, incoming entity.ExtractedSettings) []entity.Conflict {
	var out []entity.Conflict

	if old, nv := existing.World.WorldType, incoming.World.WorldType; changed(old, nv) {
		if p, ok := crossesPair(worldTypePairs, old, nv); ok {
			out = append(out, entity.Conflict{
				Type:          entity.ConflictTypeWorldType,
				SettingType:   entity.SettingTypeWorld,
				Field:         entity.FieldWorldType,
				OriginalValue: old,
				NewValue:      nv,
				Severity:      entity.ConflictSeverityHigh,
				Description:   fmt.Sprintf("世界类型从「%s」改为「%s」，两者属于不同的世界观体系", old, nv),
				Suggestion:    fmt.Sprintf("确认是否要放弃%s设定，或说明两者如何融合", firstOf(p.left)),
			})
		}
	}

	if old, nv := existing.World.Era, incoming.World.Era; changed(old, nv) {
		if _, ok := crossesPair(eraPairs, old, nv); ok {
			out = append(out, entity.Conflict{
				Type:          entity.ConflictTypeEra,
				SettingType:   entity.SettingTypeWorld,
				Field:         entity.FieldEra,
				OriginalValue: old,
				NewValue:      nv,
				Severity:      entity.ConflictSeverityHigh,
				Description:   fmt.Sprintf("时代背景从「%s」改为「%s」", old, nv),
				Suggestion:    "确认故事发生的时代，或设计穿越、时间循环等解释",
			})
		}
	}

	for _, in := range incoming.Characters {
		idx := existing.FindCharacter(in.Name)
		if idx < 0 || strings.TrimSpace(in.Personality) == "" {
			continue
		}
		old := existing.Characters[idx].Personality
		if !changed(old, in.Personality) {
			continue
		}
		if l, r, ok := contradiction(personalityPairs, old+" "+in.Personality); ok {
			out = append(out, entity.Conflict{
				Type:          entity.ConflictTypePersonality,
				SettingType:   entity.SettingTypeCharacter,
				Field:         entity.FieldPersonality,
				OriginalValue: old,
				NewValue:      in.Personality,
				Severity:      entity.ConflictSeverityMedium,
				Description:   fmt.Sprintf("%s的性格从「%s」变为「%s」，「%s」与「%s」相互矛盾", in.Name, old, in.Personality, l, r),
				Suggestion:    "可以把性格转变写成角色成长的一部分",
			})
		}
	}
	return out
}

// HasHighSeverity 是否存在高严重度冲突
func HasHighSeverity(conflicts []entity.Conflict) bool {
	for _, c := range conflicts {
		if c.Severity == entity.ConflictSeverityHigh {
			return true
		}
	}
	return false
}

// CountBySeverity 按严重度计数
func CountBySeverity(conflicts []entity.Conflict) map[entity.ConflictSeverity]int {
	out := make(map[entity.ConflictSeverity]int, 3)
	for _, c := range conflicts {
		out[c.Severity]++
	}
	return out
}

func detectWorldType(w entity.WorldSetting) []entity.Conflict {
	var out []entity.Conflict
	for _, p := range worldTypePairs {
		l, r, ok := pairHit(p, w.WorldType)
		if !ok {
			continue
		}
		out = append(out, entity.Conflict{
			Type:          entity.ConflictTypeWorldType,
			SettingType:   entity.SettingTypeWorld,
			Field:         entity.FieldWorldType,
			OriginalValue: w.WorldType,
			Severity:      entity.ConflictSeverityHigh,
			Description:   fmt.Sprintf("世界类型同时包含「%s」和「%s」", l, r),
			Suggestion:    fmt.Sprintf("选择一种主要世界观，或明确「%s」与「%s」如何共存", l, r),
		})
	}
	return out
}

func detectEra(w entity.WorldSetting) []entity.Conflict {
	var out []entity.Conflict
	for _, p := range eraPairs {
		l, r, ok := pairHit(p, w.Era)
		if !ok {
			continue
		}
		out = append(out, entity.Conflict{
			Type:          entity.ConflictTypeEra,
			SettingType:   entity.SettingTypeWorld,
			Field:         entity.FieldEra,
			OriginalValue: w.Era,
			Severity:      entity.ConflictSeverityHigh,
			Description:   fmt.Sprintf("时代背景同时出现「%s」和「%s」", l, r),
			Suggestion:    "确定一个主要时代，或加入穿越、时间旅行等设定说明",
		})
	}
	return out
}

func detectPOV(s entity.StylePreference) []entity.Conflict {
	hits := markerHits(povMarkers, s.POV)
	if len(hits) < 2 {
		return nil
	}
	return []entity.Conflict{{
		Type:          entity.ConflictTypePOV,
		SettingType:   entity.SettingTypeStyle,
		Field:         entity.FieldPOV,
		OriginalValue: s.POV,
		Severity:      entity.ConflictSeverityHigh,
		Description:   fmt.Sprintf("叙事视角同时包含%s", strings.Join(hits, "和")),
		Suggestion:    "选择一种叙事人称并在全文保持一致",
	}}
}

func detectTense(s entity.StylePreference) []entity.Conflict {
	hits := markerHits(tenseMarkers, s.Tense)
	if len(hits) < 2 {
		return nil
	}
	return []entity.Conflict{{
		Type:          entity.ConflictTypeTense,
		SettingType:   entity.SettingTypeStyle,
		Field:         entity.FieldTense,
		OriginalValue: s.Tense,
		Severity:      entity.ConflictSeverityHigh,
		Description:   fmt.Sprintf("叙事时态同时包含%s", strings.Join(hits, "和")),
		Suggestion:    "选择一种时态并在全文保持一致",
	}}
}

func detectPersonality(c entity.CharacterProfile) []entity.Conflict {
	var out []entity.Conflict
	for _, p := range personalityPairs {
		l, r, ok := pairHit(p, c.Personality)
		if !ok {
			continue
		}
		out = append(out, entity.Conflict{
			Type:          entity.ConflictTypePersonality,
			SettingType:   entity.SettingTypeCharacter,
			Field:         entity.FieldPersonality,
			OriginalValue: c.Personality,
			Severity:      entity.ConflictSeverityMedium,
			Description:   fmt.Sprintf("%s的性格同时包含「%s」和「%s」", displayName(c), l, r),
			Suggestion:    fmt.Sprintf("可以把「%s」到「%s」写成角色的成长弧线，或保留其中一个", r, l),
		})
	}
	return out
}

func detectAbility(c entity.CharacterProfile, w entity.WorldSetting) []entity.Conflict {
	if strings.TrimSpace(w.MagicSystem) != "" || !anyGroup(mundaneWorlds, w.WorldType) || anyGroup(magicalWorlds, w.WorldType) {
		return nil
	}
	var out []entity.Conflict
	for _, ab := range c.Abilities {
		word, ok := firstContained(ab, magicAbilityWords)
		if !ok {
			continue
		}
		out = append(out, entity.Conflict{
			Type:          entity.ConflictTypeAbility,
			SettingType:   entity.SettingTypeCharacter,
			Field:         entity.FieldAbilities,
			OriginalValue: ab,
			Severity:      entity.ConflictSeverityMedium,
			Description:   fmt.Sprintf("%s拥有「%s」类能力，但%s世界没有设定魔法体系", displayName(c), word, w.WorldType),
			Suggestion:    "为世界补充超自然力量的来源，或把能力改为科技手段",
		})
	}
	return out
}

func detectToneGenre(s entity.ExtractedSettings) []entity.Conflict {
	tone := s.Style.Tone
	if strings.TrimSpace(tone) == "" {
		return nil
	}
	genres := strings.Join(s.Style.Genre, "、") + " " + s.World.WorldType

	var out []entity.Conflict
	if t, ok := firstContained(tone, lightTones); ok {
		if g, ok := firstContained(genres, darkGenres); ok {
			out = append(out, toneConflict(tone, t, g))
		}
	}
	if t, ok := firstContained(tone, darkTones); ok {
		if g, ok := firstContained(genres, lightGenres); ok {
			out = append(out, toneConflict(tone, t, g))
		}
	}
	return out
}

func toneConflict(tone, t, g string) entity.Conflict {
	return entity.Conflict{
		Type:          entity.ConflictTypeToneGenre,
		SettingType:   entity.SettingTypeStyle,
		Field:         entity.FieldTone,
		OriginalValue: tone,
		Severity:      entity.ConflictSeverityLow,
		Description:   fmt.Sprintf("「%s」的基调与%s题材不太协调", t, g),
		Suggestion:    "可以保留反差作为特色，或调整基调以贴合题材",
	}
}

func detectAgeRole(c entity.CharacterProfile, w entity.WorldSetting) []entity.Conflict {
	if c.Age <= 0 {
		return nil
	}
	var out []entity.Conflict
	if c.Age < childAgeLimit {
		if role, ok := firstContained(c.Role, authorityRoles); ok {
			out = append(out, entity.Conflict{
				Type:          entity.ConflictTypeAgeRole,
				SettingType:   entity.SettingTypeCharacter,
				Field:         entity.FieldAge,
				OriginalValue: strconv.Itoa(c.Age),
				Severity:      entity.ConflictSeverityLow,
				Description:   fmt.Sprintf("%s只有%d岁，却担任%s", displayName(c), c.Age, role),
				Suggestion:    "补充角色早慧的原因，或调整年龄",
			})
		}
	}
	if c.Age > mortalAgeLimit && !anyGroup(magicalWorlds, w.WorldType) && strings.TrimSpace(w.MagicSystem) == "" {
		out = append(out, entity.Conflict{
			Type:          entity.ConflictTypeAgeRole,
			SettingType:   entity.SettingTypeCharacter,
			Field:         entity.FieldAge,
			OriginalValue: strconv.Itoa(c.Age),
			Severity:      entity.ConflictSeverityLow,
			Description:   fmt.Sprintf("%s的年龄为%d岁，超出普通人的寿命", displayName(c), c.Age),
			Suggestion:    "说明角色长寿的原因，如长生技术或非人种族",
		})
	}
	return out
}

func displayName(c entity.CharacterProfile) string {
	if n := strings.TrimSpace(c.Name); n != "" {
		return n
	}
	if r := strings.TrimSpace(c.Role); r != "" {
		return r
	}
	return "该角色"
}

func changed(old, nv string) bool {
	old, nv = strings.TrimSpace(old), strings.TrimSpace(nv)
	return old != "" && nv != "" && old != nv
}

// pairHit 文本同时命中两侧时返回双方的命中词
func pairHit(p exclusivePair, text string) (string, string, bool) {
	text = strings.ToLower(text)
	l, okL := firstContained(text, p.left)
	r, okR := firstContained(text, p.right)
	return l, r, okL && okR
}

// crossesPair 旧值只命中一侧、新值命中另一侧
func crossesPair(pairs []exclusivePair, old, nv string) (exclusivePair, bool) {
	old, nv = strings.ToLower(old), strings.ToLower(nv)
	for _, p := range pairs {
		_, oldL := firstContained(old, p.left)
		_, oldR := firstContained(old, p.right)
		_, newL := firstContained(nv, p.left)
		_, newR := firstContained(nv, p.right)
		if oldL && !oldR && newR && !newL {
			return p, true
		}
		if oldR && !oldL && newL && !newR {
			return exclusivePair{left: p.right, right: p.left}, true
		}
	}
	return exclusivePair{}, false
}

func contradiction(pairs []exclusivePair, text string) (string, string, bool) {
	for _, p := range pairs {
		if l, r, ok := pairHit(p, text); ok {
			return l, r, true
		}
	}
	return "", "", false
}

func markerHits(markers [][]string, text string) []string {
	text = strings.ToLower(text)
	var hits []string
	for _, group := range markers {
		if _, ok := firstContained(text, group); ok {
			hits = append(hits, group[0])
		}
	}
	return hits
}

func anyGroup(groups [][]string, text string) bool {
	text = strings.ToLower(text)
	for _, g := range groups {
		if _, ok := firstContained(text, g); ok {
			return true
		}
	}
	return false
}

func firstContained(text string, words []string) (string, bool) {
	for _, w := range words {
		if strings.Contains(text, w) {
			return w, true
		}
	}
	return "", false
}

func firstOf(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[0]
}
