// Package modification 自然语言设定修改
package modification

import (
	"fmt"
	"regexp"
	"strings"

	"z-novel-ai-agent/internal/application/agent/agentutil"
	"z-novel-ai-agent/internal/application/agent/conflict"
	"z-novel-ai-agent/internal/domain/entity"
)

// Modifier 修改引擎能力接口
type Modifier interface {
	Process(text string, settings entity.ExtractedSettings) entity.ModificationResult
}

// Engine 基于规则的修改引擎，无状态
type Engine struct{}

// New 创建修改引擎
func New() *Engine {
	return &Engine{}
}

// Process 解析并应用修改指令
func (e *Engine) Process(text string, settings entity.ExtractedSettings) entity.ModificationResult {
	return e.Apply(e.Parse(text, settings), settings)
}

// Parse 按固定顺序匹配修改句式，都不匹配时降级为 generic 指令
func (e *Engine) Parse(text string, settings entity.ExtractedSettings) entity.ModificationInstruction {
	raw := strings.TrimSpace(text)
	s := agentutil.TrimPunct(agentutil.Fold(text))
	instr := entity.ModificationInstruction{Raw: raw}

	if m := matchFirst(s, reTrait, reTraitEnglish); m != nil {
		target, adj := strings.TrimSpace(m[1]), agentutil.TrimPunct(m[2])
		if isStyleTarget(target) {
			instr.Scope = entity.ModificationScopeStyle
			instr.Type = entity.ModificationTypeShiftTone
			instr.Field = entity.FieldTone
			instr.NewValue = adj
			instr.Confidence = confidenceReplace
			return instr
		}
		instr.Scope = entity.ModificationScopeCharacter
		instr.Type = entity.ModificationTypeAdjustTrait
		instr.Field = entity.FieldPersonality
		instr.NewValue = adj
		instr.Target, instr.Confidence = resolveTarget(target, settings, confidenceTrait)
		return instr
	}

	if m := matchFirst(s, reFieldAssign, reFieldAssignEN); m != nil {
		instr.Scope = entity.ModificationScopeCharacter
		instr.Type = entity.ModificationTypeSetField
		instr.Field = characterFieldWords[strings.ToLower(m[2])]
		instr.NewValue = agentutil.TrimPunct(m[3])
		target := strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(m[1], "把"), "将"))
		instr.Target, instr.Confidence = resolveTarget(target, settings, confidenceField)
		return instr
	}

	if m := rePlotReplace.FindStringSubmatch(s); m != nil {
		instr.Scope = entity.ModificationScopePlot
		instr.Type = entity.ModificationTypeReplace
		instr.Field = plotFieldWords[m[1]]
		instr.NewValue = agentutil.TrimPunct(m[2])
		instr.Confidence = confidenceReplace
		return instr
	}

	if m := reStyleReplace.FindStringSubmatch(s); m != nil {
		instr.Scope = entity.ModificationScopeStyle
		instr.Type = entity.ModificationTypeShiftTone
		instr.Field = styleFieldWords[m[1]]
		instr.NewValue = agentutil.TrimPunct(m[2])
		instr.Confidence = confidenceReplace
		return instr
	}
	if m := reStyleShift.FindStringSubmatch(s); m != nil {
		instr.Scope = entity.ModificationScopeStyle
		instr.Type = entity.ModificationTypeShiftTone
		instr.Field = entity.FieldTone
		instr.NewValue = agentutil.TrimPunct(m[1])
		instr.Confidence = confidenceReplace
		return instr
	}

	if m := reWorldReplace.FindStringSubmatch(s); m != nil {
		instr.Scope = entity.ModificationScopeWorld
		instr.Type = entity.ModificationTypeReplace
		instr.Field = worldFieldWords[m[1]]
		instr.NewValue = agentutil.TrimPunct(m[2])
		instr.Confidence = confidenceReplace
		return instr
	}

	return genericInstruction(raw, settings)
}

// Apply 在设定副本上执行指令，原设定不变
func (e *Engine) Apply(instr entity.ModificationInstruction, settings entity.ExtractedSettings) entity.ModificationResult {
	res := entity.ModificationResult{Instruction: instr, Settings: settings.Clone()}
	if strings.TrimSpace(instr.Raw) == "" && strings.TrimSpace(instr.NewValue) == "" {
		return res
	}

	var ok bool
	switch instr.Type {
	case entity.ModificationTypeAdjustTrait:
		ok = applyTrait(&res, instr)
	case entity.ModificationTypeSetField:
		ok = applyCharacterField(&res, instr)
	case entity.ModificationTypeReplace, entity.ModificationTypeShiftTone:
		ok = applyReplace(&res, instr)
	}
	if !ok && instr.Type != entity.ModificationTypeGeneric {
		// 无法定位或取值非法时降级为低置信度的通用修改
		g := genericInstruction(instr.Raw, settings)
		res = entity.ModificationResult{Instruction: g, Settings: settings.Clone()}
		instr = g
	}
	if instr.Type == entity.ModificationTypeGeneric {
		ok = applyGeneric(&res, instr)
	}
	if !ok {
		return res
	}

	res.Success = true
	res.Confidence = res.Instruction.Confidence
	res.Warnings = newConflicts(settings, res.Settings)
	return res
}

func applyTrait(res *entity.ModificationResult, instr entity.ModificationInstruction) bool {
	idx := locateCharacter(instr.Target, res.Settings)
	if idx < 0 || strings.TrimSpace(instr.NewValue) == "" {
		return false
	}
	c := &res.Settings.Characters[idx]
	old := c.Personality
	if strings.TrimSpace(old) == "" {
		c.Personality = instr.NewValue
	} else {
		c.Personality = old + "，变得更加" + instr.NewValue
	}
	res.Changes = append(res.Changes, describe(displayName(*c)+"的性格", old, c.Personality))
	return true
}

func applyCharacterField(res *entity.ModificationResult, instr entity.ModificationInstruction) bool {
	idx := locateCharacter(instr.Target, res.Settings)
	if idx < 0 || instr.Field == "" {
		return false
	}
	c := &res.Settings.Characters[idx]
	label := displayName(*c)
	old := c.Field(instr.Field)
	if !c.SetField(instr.Field, instr.NewValue) {
		return false
	}
	res.Changes = append(res.Changes, describe(label+"的"+fieldLabel(instr.Field), old, c.Field(instr.Field)))
	return true
}

func applyReplace(res *entity.ModificationResult, instr entity.ModificationInstruction) bool {
	if instr.Field == "" || strings.TrimSpace(instr.NewValue) == "" {
		return false
	}
	var old, nv string
	switch instr.Scope {
	case entity.ModificationScopeWorld:
		old = res.Settings.World.Field(instr.Field)
		if !res.Settings.World.SetField(instr.Field, instr.NewValue) {
			return false
		}
		nv = res.Settings.World.Field(instr.Field)
	case entity.ModificationScopePlot:
		old = res.Settings.Plot.Field(instr.Field)
		if !res.Settings.Plot.SetField(instr.Field, instr.NewValue) {
			return false
		}
		nv = res.Settings.Plot.Field(instr.Field)
	case entity.ModificationScopeStyle:
		old = res.Settings.Style.Field(instr.Field)
		if !res.Settings.Style.SetField(instr.Field, instr.NewValue) {
			return false
		}
		nv = res.Settings.Style.Field(instr.Field)
	default:
		return false
	}
	res.Changes = append(res.Changes, describe(fieldLabel(instr.Field), old, nv))
	return true
}

// applyGeneric 把无法结构化的要求记为备注，交给后续创作参考
func applyGeneric(res *entity.ModificationResult, instr entity.ModificationInstruction) bool {
	note := strings.TrimSpace(instr.Raw)
	if note == "" {
		return false
	}
	if idx := locateCharacter(instr.Target, res.Settings); idx >= 0 {
		c := &res.Settings.Characters[idx]
		old := c.Background
		if strings.TrimSpace(old) == "" {
			c.Background = "备注：" + note
		} else {
			c.Background = old + "；备注：" + note
		}
		res.Changes = append(res.Changes, fmt.Sprintf("已记录对%s的修改要求：%s", displayName(*c), note))
		return true
	}
	res.Settings.Plot.SubplotPoints = append(res.Settings.Plot.SubplotPoints, note)
	res.Changes = append(res.Changes, "已记录修改要求："+note)
	return true
}

func genericInstruction(raw string, settings entity.ExtractedSettings) entity.ModificationInstruction {
	instr := entity.ModificationInstruction{
		Scope:      entity.ModificationScopeUnknown,
		Type:       entity.ModificationTypeGeneric,
		Raw:        raw,
		Confidence: confidenceGeneric,
	}
	if idx := fallbackCharacter(settings); idx >= 0 {
		instr.Scope = entity.ModificationScopeCharacter
		instr.Target = settings.Characters[idx].Name
	} else {
		instr.Scope = entity.ModificationScopePlot
	}
	return instr
}

// locateCharacter 名字匹配 → 角色定位匹配（含无名角色）→ 主角或第一个角色
func locateCharacter(target string, s entity.ExtractedSettings) int {
	if idx := s.FindCharacter(target); idx >= 0 {
		return idx
	}
	if idx := matchRole(target, s); idx >= 0 {
		return idx
	}
	return fallbackCharacter(s)
}

// resolveTarget 名字精确匹配 → 角色定位匹配 → 代词/主角 → 第一个主角 → 第一个角色。
// 每退一级置信度降低。返回角色名，无名角色按角色定位返回，Apply 时据此重新定位。
func resolveTarget(target string, s entity.ExtractedSettings, base float64) (string, float64) {
	if len(s.Characters) == 0 {
		return target, base * 0.5
	}
	if idx := s.FindCharacter(target); idx >= 0 {
		return s.Characters[idx].Name, base
	}
	if idx := matchRole(target, s); idx >= 0 {
		c := s.Characters[idx]
		if c.Name != "" {
			return c.Name, base * 0.9
		}
		return c.Role, base * 0.9
	}
	idx := fallbackCharacter(s)
	factor := 0.8
	if !isAlias(strings.ToLower(target)) {
		factor = 0.6
	}
	return s.Characters[idx].Name, base * factor
}

// matchRole 按角色定位匹配，代词与泛指主角的说法不参与
func matchRole(target string, s entity.ExtractedSettings) int {
	lower := strings.ToLower(strings.TrimSpace(target))
	if lower == "" || isAlias(lower) {
		return -1
	}
	for i, c := range s.Characters {
		role := strings.ToLower(strings.TrimSpace(c.Role))
		if role != "" && (strings.Contains(lower, role) || strings.Contains(role, lower)) {
			return i
		}
	}
	return -1
}

func fallbackCharacter(s entity.ExtractedSettings) int {
	if p := s.Protagonist(); p >= 0 {
		return p
	}
	if len(s.Characters) > 0 {
		return 0
	}
	return -1
}

func isAlias(lower string) bool {
	for _, a := range protagonistAliases {
		if lower == a {
			return true
		}
	}
	return false
}

func isStyleTarget(target string) bool {
	lower := strings.ToLower(target)
	for _, t := range styleTargets {
		if lower == t {
			return true
		}
	}
	return false
}

func matchFirst(s string, res ...*regexp.Regexp) []string {
	for _, re := range res {
		if m := re.FindStringSubmatch(s); m != nil {
			return m
		}
	}
	return nil
}

// newConflicts 修改后新出现的冲突
func newConflicts(before, after entity.ExtractedSettings) []string {
	seen := make(map[string]struct{})
	for _, c := range conflict.Detect(before) {
		seen[conflictKey(c)] = struct{}{}
	}
	var out []string
	for _, c := range conflict.Detect(after) {
		if _, ok := seen[conflictKey(c)]; ok {
			continue
		}
		out = append(out, c.Description+"。"+c.Suggestion)
	}
	return out
}

func conflictKey(c entity.Conflict) string {
	return string(c.Type) + "|" + c.Field + "|" + c.Description
}

func describe(label, old, nv string) string {
	if strings.TrimSpace(old) == "" {
		return fmt.Sprintf("%s设为「%s」", label, nv)
	}
	return fmt.Sprintf("%s：「%s」→「%s」", label, old, nv)
}

func displayName(c entity.CharacterProfile) string {
	if c.Name != "" {
		return c.Name
	}
	if c.Role != "" {
		return c.Role
	}
	return "角色"
}

var fieldLabels = map[string]string{
	entity.FieldName:             "名字",
	entity.FieldRole:             "身份",
	entity.FieldPersonality:      "性格",
	entity.FieldBackground:       "背景",
	entity.FieldAppearance:       "外貌",
	entity.FieldAge:              "年龄",
	entity.FieldAbilities:        "能力",
	entity.FieldWorldType:        "世界类型",
	entity.FieldEra:              "时代",
	entity.FieldMagicSystem:      "魔法体系",
	entity.FieldTechnologyLevel:  "科技水平",
	entity.FieldConflict:         "核心冲突",
	entity.FieldResolution:       "结局",
	entity.FieldThemes:           "主题",
	entity.FieldIncitingIncident: "起因",
	entity.FieldTone:             "基调",
	entity.FieldWritingStyle:     "文风",
	entity.FieldPOV:              "叙事视角",
	entity.FieldPacing:           "节奏",
}

func fieldLabel(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}
