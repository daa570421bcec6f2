package agent

import (
	"fmt"
	"strings"

	"z-novel-ai-agent/internal/application/agent/extractor"
	"z-novel-ai-agent/internal/application/agent/readiness"
	"z-novel-ai-agent/internal/domain/entity"
)

// maxConflictNotes 单条回复里最多提示的冲突数
const maxConflictNotes = 2

const fallbackQuestion = "还有什么想补充的吗？"

func settingMessage(extracted extractor.ExtractionResult, a entity.ReadinessAssessment, d entity.CreationDecision, conflicts []entity.Conflict, autoFilled, gated bool) string {
	var b strings.Builder

	if items := describeDelta(extracted.Delta); len(items) > 0 {
		b.WriteString("记下了：")
		b.WriteString(strings.Join(items, "，"))
		b.WriteString("。")
	} else {
		b.WriteString("好的。")
	}

	writeConflictNotes(&b, conflicts)

	switch {
	case gated:
		b.WriteString("这些地方确认之后，我们就可以开始创作。")
	case d.ShouldCreate:
		b.WriteString(creationLine(d))
		if autoFilled {
			b.WriteString("你没提到的细节我先按故事的氛围补上了，之后随时可以调整。")
		}
	default:
		b.WriteString(nextQuestion(a))
	}
	return b.String()
}

func creationLine(d entity.CreationDecision) string {
	ch := d.SuggestedChapter
	switch d.Strategy {
	case entity.StrategyOutline:
		return fmt.Sprintf("好的，我这就开始整理第%d章的大纲。", ch)
	case entity.StrategyFull:
		return fmt.Sprintf("好的，我这就开始写第%d章的完整内容。", ch)
	case entity.StrategyExpand:
		return fmt.Sprintf("好的，我来扩写第%d章。", ch)
	case entity.StrategyRewrite:
		return fmt.Sprintf("好的，我来重写第%d章。", ch)
	default:
		return fmt.Sprintf("好的，接着写第%d章。", ch)
	}
}

func writeConflictNotes(b *strings.Builder, conflicts []entity.Conflict) {
	n := 0
	for _, c := range conflicts {
		if c.Severity == entity.ConflictSeverityLow || n >= maxConflictNotes {
			continue
		}
		if n == 0 {
			b.WriteString("不过有个地方想跟你确认一下：")
		} else {
			b.WriteString("另外，")
		}
		b.WriteString(strings.TrimRight(c.Description, "。"))
		if c.Suggestion != "" {
			b.WriteString("，")
			b.WriteString(strings.TrimRight(c.Suggestion, "。"))
		}
		b.WriteString("。")
		n++
	}
}

func nextQuestion(a entity.ReadinessAssessment) string {
	if q, ok := readiness.NextQuestion(a); ok && q.Question != "" {
		return q.Question
	}
	return fallbackQuestion
}

func modificationMessage(res entity.ModificationResult) string {
	if !res.Success {
		return "我没太明白要改哪里，可以说得具体一点吗？比如“让主角更勇敢一点”。"
	}

	var b strings.Builder
	if res.Instruction.Type == entity.ModificationTypeGeneric {
		b.WriteString("好的，这个想法我记下了，创作时会参考。")
	} else {
		b.WriteString("好的，已经改好了：")
		b.WriteString(strings.Join(res.Changes, "；"))
		b.WriteString("。")
	}
	if len(res.Warnings) > 0 {
		b.WriteString("不过要留意：")
		b.WriteString(strings.Join(res.Warnings, "；"))
		b.WriteString("。")
	}
	return b.String()
}

func summaryMessage(s entity.ExtractedSettings, a entity.ReadinessAssessment) string {
	if s.IsEmpty() {
		return "目前还没有任何设定，先说说你想写一个什么样的故事吧。"
	}

	lines := []string{"目前的设定是这样的："}
	if len(s.Characters) > 0 {
		var chars []string
		for _, c := range s.Characters {
			chars = append(chars, characterLine(c))
		}
		lines = append(lines, "角色："+strings.Join(chars, "；"))
	}
	if w := nonEmpty(s.World.WorldType, s.World.Era, s.World.MagicSystem, s.World.TechnologyLevel, s.World.Geography); len(w) > 0 {
		lines = append(lines, "世界观："+strings.Join(w, "，"))
	}
	var plot []string
	if s.Plot.Conflict != "" {
		plot = append(plot, "核心冲突是"+s.Plot.Conflict)
	}
	if len(s.Plot.Themes) > 0 {
		plot = append(plot, "主题是"+strings.Join(s.Plot.Themes, "、"))
	}
	if s.Plot.IncitingIncident != "" {
		plot = append(plot, "起因是"+s.Plot.IncitingIncident)
	}
	if s.Plot.Resolution != "" {
		plot = append(plot, "结局是"+s.Plot.Resolution)
	}
	if len(plot) > 0 {
		lines = append(lines, "情节："+strings.Join(plot, "，"))
	}
	style := nonEmpty(s.Style.POV, s.Style.Tense, s.Style.Tone, s.Style.Pacing, s.Style.WritingStyle)
	style = append(style, s.Style.Genre...)
	if len(style) > 0 {
		lines = append(lines, "风格："+strings.Join(style, "，"))
	}

	if a.IsReady {
		lines = append(lines, "信息已经够用了，随时可以开始创作。")
	} else {
		lines = append(lines, nextQuestion(a))
	}
	return strings.Join(lines, "\n")
}

func chatMessage(st *entity.AgentState, a entity.ReadinessAssessment) string {
	switch {
	case st.CreationStarted:
		return "有想调整的地方可以直接告诉我，或者说“继续”我就接着写。"
	case st.Settings.IsEmpty():
		return "你好！想写一个什么样的故事？可以从主角、世界观或者想讲的冲突聊起。"
	default:
		return "嗯，我在听。" + nextQuestion(a)
	}
}

// describeDelta 本轮新记录的设定摘要
func describeDelta(d entity.ExtractedSettings) []string {
	var items []string
	for _, c := range d.Characters {
		items = append(items, characterLine(c))
	}
	if d.World.WorldType != "" {
		items = append(items, d.World.WorldType+"世界")
	}
	if d.World.Era != "" {
		items = append(items, "时代是"+d.World.Era)
	}
	if d.World.MagicSystem != "" {
		items = append(items, "魔法体系是"+d.World.MagicSystem)
	}
	if d.Plot.Conflict != "" {
		items = append(items, "核心冲突是"+d.Plot.Conflict)
	}
	if len(d.Plot.Themes) > 0 {
		items = append(items, "主题是"+strings.Join(d.Plot.Themes, "、"))
	}
	if style := nonEmpty(d.Style.POV, d.Style.Tone, d.Style.Tense, d.Style.Pacing); len(style) > 0 {
		items = append(items, "风格"+strings.Join(style, "、"))
	}
	return items
}

func characterLine(c entity.CharacterProfile) string {
	name := c.Name
	if name == "" {
		name = c.Role
	}
	if name == "" {
		name = "一位角色"
	}
	var details []string
	if c.Name != "" && c.Role != "" {
		details = append(details, c.Role)
	}
	details = append(details, nonEmpty(c.Background, c.Personality)...)
	if c.Age > 0 {
		details = append(details, fmt.Sprintf("%d岁", c.Age))
	}
	if len(details) == 0 {
		return name
	}
	return name + "（" + strings.Join(details, "，") + "）"
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
