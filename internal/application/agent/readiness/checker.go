// Package readiness 创作就绪度评估
package readiness

import (
	"strings"

	"z-novel-ai-agent/internal/domain/entity"
)

// DefaultMinReadiness 默认最低就绪分
const DefaultMinReadiness = 0.3

const (
	characterBonus = 0.2
	worldBonus     = 0.1
	plotBonus      = 0.1
)

// FieldCharacters 缺少角色时的关键缺失项字段名
const FieldCharacters = "characters"

// requiredField 必填字段，Priority 1 为阻塞级，4 为可忽略
type requiredField struct {
	field    string
	priority int
	question string
}

var (
	characterFields = []requiredField{
		{entity.FieldName, 1, "主角叫什么名字？"},
		{entity.FieldRole, 1, "这个角色在故事里是什么身份？"},
		{entity.FieldPersonality, 2, "主角是什么样的性格？"},
		{entity.FieldBackground, 3, "主角有什么样的过去或职业？"},
		{entity.FieldAppearance, 4, "主角长什么样？"},
	}
	worldFields = []requiredField{
		{entity.FieldWorldType, 1, "故事发生在什么样的世界？奇幻、科幻还是现实？"},
		{entity.FieldEra, 2, "故事发生在什么时代？"},
		{entity.FieldTechnologyLevel, 3, "这个世界的科技发展到什么程度？"},
		{entity.FieldGeography, 4, "故事主要发生在什么地方？"},
	}
	plotFields = []requiredField{
		{entity.FieldConflict, 1, "故事的核心冲突是什么？"},
		{entity.FieldThemes, 2, "你希望故事表达什么主题？"},
		{entity.FieldIncitingIncident, 3, "故事从什么事件开始？"},
		{entity.FieldResolution, 4, "你心目中的结局是怎样的？"},
	}
	styleFields = []requiredField{
		{entity.FieldPOV, 2, "想用第一人称还是第三人称来讲述？"},
		{entity.FieldTone, 2, "整体基调偏轻松还是偏严肃？"},
		{entity.FieldTense, 3, "叙述用过去时还是现在时？"},
		{entity.FieldPacing, 4, "节奏想要紧凑一些还是舒缓一些？"},
	}
)

// TotalRequiredFields 必填字段总数
func TotalRequiredFields() int {
	return len(characterFields) + len(worldFields) + len(plotFields) + len(styleFields)
}

// ReadinessChecker 就绪度评估能力接口
type ReadinessChecker interface {
	Check(settings entity.ExtractedSettings) entity.ReadinessAssessment
}

// Checker 就绪度评估器
type Checker struct {
	minReadiness float64
}

// NewChecker 创建评估器，minReadiness 不在 (0,1] 内时使用默认值
func NewChecker(minReadiness float64) *Checker {
	if minReadiness <= 0 || minReadiness > 1 {
		minReadiness = DefaultMinReadiness
	}
	return &Checker{minReadiness: minReadiness}
}

// MinReadiness 最低就绪分
func (c *Checker) MinReadiness() float64 {
	return c.minReadiness
}

// Check 评估设定是否足以开始创作。
// score = clamp01(1 - (自动补全项 + 关键缺失项) / 必填总数)，再叠加奖励分后截断到 1。
func (c *Checker) Check(s entity.ExtractedSettings) entity.ReadinessAssessment {
	var a entity.ReadinessAssessment

	var first entity.CharacterProfile
	if len(s.Characters) == 0 {
		a.MissingCritical = []entity.MissingInfo{{
			SettingType: entity.SettingTypeCharacter,
			Field:       FieldCharacters,
			Priority:    1,
			Question:    "故事的主角是谁？可以说说他的名字和身份。",
		}}
	} else {
		first = s.Characters[0]
	}

	a.AutoCompletable = appendMissing(a.AutoCompletable, entity.SettingTypeCharacter, characterFields, first.Field)
	a.AutoCompletable = appendMissing(a.AutoCompletable, entity.SettingTypeWorld, worldFields, s.World.Field)
	a.AutoCompletable = appendMissing(a.AutoCompletable, entity.SettingTypePlot, plotFields, s.Plot.Field)
	a.AutoCompletable = appendMissing(a.AutoCompletable, entity.SettingTypeStyle, styleFields, s.Style.Field)

	total := float64(TotalRequiredFields())
	score := clamp01(1 - float64(len(a.AutoCompletable)+len(a.MissingCritical))/total)
	if len(s.Characters) > 0 {
		score += characterBonus
	}
	if !s.World.IsEmpty() {
		score += worldBonus
	}
	if !s.Plot.IsEmpty() {
		score += plotBonus
	}
	a.Score = clamp01(score)

	a.IsReady = a.Score >= c.minReadiness && len(a.MissingCritical) == 0
	switch {
	case len(a.MissingCritical) > 0:
		a.RecommendedAction = entity.ReadinessActionAskCharacters
	case a.IsReady:
		a.RecommendedAction = entity.ReadinessActionReady
	default:
		a.RecommendedAction = entity.ReadinessActionGatherMore
	}
	return a
}

// NextQuestion 返回最应该追问的问题：先关键缺失项，再按优先级取第一个
func NextQuestion(a entity.ReadinessAssessment) (entity.MissingInfo, bool) {
	if len(a.MissingCritical) > 0 {
		return a.MissingCritical[0], true
	}
	best := -1
	for i, m := range a.AutoCompletable {
		if best < 0 || m.Priority < a.AutoCompletable[best].Priority {
			best = i
		}
	}
	if best < 0 {
		return entity.MissingInfo{}, false
	}
	return a.AutoCompletable[best], true
}

func appendMissing(out []entity.MissingInfo, st entity.SettingType, fields []requiredField, get func(string) string) []entity.MissingInfo {
	for _, f := range fields {
		if strings.TrimSpace(get(f.field)) != "" {
			continue
		}
		out = append(out, entity.MissingInfo{
			SettingType: st,
			Field:       f.field,
			Priority:    f.priority,
			Question:    f.question,
		})
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
