package decision

import (
	"time"

	"z-novel-ai-agent/internal/domain/entity"
)

// FlowState 创作流程的可持久化状态
type FlowState struct {
	History           []entity.CreationRecord `json:"history,omitempty"`
	CurrentChapter    int                     `json:"current_chapter"`
	TotalWords        int                     `json:"total_words"`
	Satisfaction      []float64               `json:"satisfaction,omitempty"`
	AdaptiveThreshold float64                 `json:"adaptive_threshold,omitempty"`
}

// Stats 创作统计
type Stats struct {
	Creations      int                             `json:"creations"`
	CurrentChapter int                             `json:"current_chapter"`
	TotalWords     int                             `json:"total_words"` // 计划字数，见 FlowManager
	ByStrategy     map[entity.CreationStrategy]int `json:"by_strategy"`
	ByTrigger      map[entity.CreationTrigger]int  `json:"by_trigger"`
}

// FlowManager 在决策引擎之上维护创作历史、章节号与累计字数。
// 生成在外部完成，累计字数按每次决策的 SuggestedLength 计算，是计划字数而非实际产出。
type FlowManager struct {
	engine         Engine
	history        []entity.CreationRecord
	currentChapter int
	totalWords     int
	now            func() time.Time
}

// NewFlowManager 创建流程管理器
func NewFlowManager(engine Engine) *FlowManager {
	return &FlowManager{engine: engine, now: time.Now}
}

// Engine 底层决策引擎
func (m *FlowManager) Engine() Engine {
	return m.engine
}

// Decide 评估创作决策，引擎未给出章节时建议下一章
func (m *FlowManager) Decide(ctx entity.CreationContext) entity.CreationDecision {
	ctx.HasCreatedBefore = ctx.HasCreatedBefore || len(m.history) > 0
	ctx.CurrentChapter = m.currentChapter

	d := m.engine.ShouldCreate(ctx)
	if d.ShouldCreate && d.SuggestedChapter == 0 {
		d.SuggestedChapter = m.currentChapter + 1
	}
	return d
}

// RecordCreation 追加一条创作记录，wordCount 计入累计字数
func (m *FlowManager) RecordCreation(d entity.CreationDecision, wordCount int) entity.CreationRecord {
	chapter := d.SuggestedChapter
	if chapter <= 0 {
		chapter = m.currentChapter + 1
	}
	if chapter > m.currentChapter {
		m.currentChapter = chapter
	}
	if wordCount > 0 {
		m.totalWords += wordCount
	}
	rec := entity.CreationRecord{
		Decision:  d,
		Chapter:   chapter,
		WordCount: wordCount,
		CreatedAt: m.now(),
	}
	m.history = append(m.history, rec)
	return rec
}

// History 创作历史副本
func (m *FlowManager) History() []entity.CreationRecord {
	return append([]entity.CreationRecord(nil), m.history...)
}

// CurrentChapter 当前章节号
func (m *FlowManager) CurrentChapter() int {
	return m.currentChapter
}

// TotalWords 累计计划字数
func (m *FlowManager) TotalWords() int {
	return m.totalWords
}

// Stats 统计创作次数、策略与触发原因分布
func (m *FlowManager) Stats() Stats {
	s := Stats{
		Creations:      len(m.history),
		CurrentChapter: m.currentChapter,
		TotalWords:     m.totalWords,
		ByStrategy:     make(map[entity.CreationStrategy]int),
		ByTrigger:      make(map[entity.CreationTrigger]int),
	}
	for _, r := range m.history {
		s.ByStrategy[r.Decision.Strategy]++
		s.ByTrigger[r.Decision.Trigger]++
	}
	return s
}

// State 导出可持久化状态
func (m *FlowManager) State() FlowState {
	st := FlowState{
		History:        m.History(),
		CurrentChapter: m.currentChapter,
		TotalWords:     m.totalWords,
	}
	if a, ok := m.engine.(*AdaptiveEngine); ok {
		st.Satisfaction = a.Scores()
		st.AdaptiveThreshold = a.Threshold()
	}
	return st
}

// Restore 从持久化状态恢复
func (m *FlowManager) Restore(st FlowState) {
	m.history = append([]entity.CreationRecord(nil), st.History...)
	m.currentChapter = st.CurrentChapter
	m.totalWords = st.TotalWords
	if a, ok := m.engine.(*AdaptiveEngine); ok {
		a.Restore(st.Satisfaction, st.AdaptiveThreshold)
	}
}
