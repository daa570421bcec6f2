package modification

import (
	"regexp"

	"z-novel-ai-agent/internal/domain/entity"
)

const (
	confidenceTrait   = 0.9
	confidenceField   = 0.9
	confidenceReplace = 0.85
	confidenceGeneric = 0.3
)

// 输入在匹配前已做全角折叠并去除首尾标点
var (
	reTrait         = regexp.MustCompile(`^(?:请)?(?:让|把|使)(.+?)(?:变得)?更(?:加)?(.+?)(?:一点|一些|一下|点|些)?$`)
	reTraitEnglish  = regexp.MustCompile(`(?i)^make\s+(.+?)\s+more\s+(.+)$`)
	reFieldAssign   = regexp.MustCompile(`^(.+?)的(性格|外貌|长相|背景|经历|年龄|身份|名字|能力)(?:改成|改为|换成|变成|应该是|是|为)(.+)$`)
	reFieldAssignEN = regexp.MustCompile(`(?i)^(.+?)'s\s+(personality|appearance|background|age|role|name|abilities)\s+(?:is|should be|becomes|to)\s+(.+)$`)
	rePlotReplace   = regexp.MustCompile(`(冲突|矛盾|结局|结尾|主题|起因)(?:改成|改为|换成|变成|调整为)(.+)$`)
	reStyleReplace  = regexp.MustCompile(`(风格|基调|语气|文风|视角|人称|节奏)(?:改成|改为|换成|变成|调整为)(.+)$`)
	reStyleShift    = regexp.MustCompile(`写得更(?:加)?(.+?)(?:一点|一些|点|些)?$`)
	reWorldReplace  = regexp.MustCompile(`(魔法体系|力量体系|魔法|世界观|世界类型|时代|科技水平)(?:改成|改为|换成|变成|调整为)(.+)$`)
)

var characterFieldWords = map[string]string{
	"性格":            entity.FieldPersonality,
	"外貌":            entity.FieldAppearance,
	"长相":            entity.FieldAppearance,
	"背景":            entity.FieldBackground,
	"经历":            entity.FieldBackground,
	"年龄":            entity.FieldAge,
	"身份":            entity.FieldRole,
	"名字":            entity.FieldName,
	"能力":            entity.FieldAbilities,
	"personality":   entity.FieldPersonality,
	"appearance":    entity.FieldAppearance,
	"background":    entity.FieldBackground,
	"age":           entity.FieldAge,
	"role":          entity.FieldRole,
	"name":          entity.FieldName,
	"abilities":     entity.FieldAbilities,
}

var plotFieldWords = map[string]string{
	"冲突": entity.FieldConflict,
	"矛盾": entity.FieldConflict,
	"结局": entity.FieldResolution,
	"结尾": entity.FieldResolution,
	"主题": entity.FieldThemes,
	"起因": entity.FieldIncitingIncident,
}

var styleFieldWords = map[string]string{
	"风格": entity.FieldTone,
	"基调": entity.FieldTone,
	"语气": entity.FieldTone,
	"文风": entity.FieldWritingStyle,
	"视角": entity.FieldPOV,
	"人称": entity.FieldPOV,
	"节奏": entity.FieldPacing,
}

var worldFieldWords = map[string]string{
	"魔法体系": entity.FieldMagicSystem,
	"力量体系": entity.FieldMagicSystem,
	"魔法":   entity.FieldMagicSystem,
	"世界观":  entity.FieldWorldType,
	"世界类型": entity.FieldWorldType,
	"时代":   entity.FieldEra,
	"科技水平": entity.FieldTechnologyLevel,
}

// styleTargets 出现在“让X更Y”中时表示调整整体风格而不是某个角色
var styleTargets = []string{"故事", "文风", "风格", "整体", "文章", "语气", "基调", "氛围", "the story"}

// protagonistAliases 代词或泛指主角的说法
var protagonistAliases = []string{"他", "她", "主角", "主人公", "男主", "女主", "protagonist", "the protagonist", "hero", "him", "her"}
