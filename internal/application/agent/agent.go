// Package agent 对话式设定收集与创作决策编排
package agent

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"z-novel-ai-agent/internal/application/agent/completer"
	"z-novel-ai-agent/internal/application/agent/conflict"
	"z-novel-ai-agent/internal/application/agent/decision"
	"z-novel-ai-agent/internal/application/agent/extractor"
	"z-novel-ai-agent/internal/application/agent/intent"
	"z-novel-ai-agent/internal/application/agent/modification"
	"z-novel-ai-agent/internal/application/agent/readiness"
	"z-novel-ai-agent/internal/domain/entity"
	"z-novel-ai-agent/pkg/logger"
	"z-novel-ai-agent/pkg/metrics"
	"z-novel-ai-agent/pkg/tracer"
)

// Metadata 键
const (
	MetaIntent        = "intent"
	MetaSettingTypes  = "setting_types"
	MetaReadiness     = "readiness_score"
	MetaSettings      = "settings"
	MetaDecision      = "decision"
	MetaConflicts     = "conflicts"
	MetaHighConflicts = "high_conflicts"
	MetaModification  = "modification"
	MetaTurn          = "turn"
)

// AgentResponse 单轮处理结果
type AgentResponse struct {
	Message      string         `json:"message"`
	ShouldCreate bool           `json:"should_create"`
	Confidence   float64        `json:"confidence"`
	Metadata     map[string]any `json:"metadata"`
}

// Decision 取出本轮的创作决策，非设定类轮次没有决策
func (r AgentResponse) Decision() (entity.CreationDecision, bool) {
	d, ok := r.Metadata[MetaDecision].(entity.CreationDecision)
	return d, ok
}

// Agent 单个会话的对话编排器，持有并独占修改 AgentState。
// 不做内部加锁，同一会话的调用必须由调用方串行化。
type Agent struct {
	cfg        Config
	recognizer intent.IntentRecognizer
	extractor  extractor.SettingExtractor
	checker    readiness.ReadinessChecker
	completer  *completer.Completer
	modifier   modification.Modifier
	adaptive   *decision.AdaptiveEngine
	flow       *decision.FlowManager
	state      *entity.AgentState

	fixedThreshold float64
}

// New 创建代理
func New(sessionID string, cfg Config) *Agent {
	rec := intent.NewRecognizer()
	for in, kws := range cfg.ExtraIntentKeywords {
		rec.AddIntentKeywords(in, kws...)
	}
	for st, kws := range cfg.ExtraSettingKeywords {
		rec.AddSettingTypeKeywords(st, kws...)
	}
	// 决策引擎只在 create/setting 轮次运行，触发词必须能被识别为 create
	rec.AddIntentKeywords(entity.IntentCreate, cfg.Decision.TriggerKeywords()...)

	a := &Agent{
		cfg:        cfg,
		recognizer: rec,
		extractor:  extractor.New(cfg.ExtractorConfidence),
		checker:    readiness.NewChecker(cfg.MinReadiness),
		completer:  completer.New(cfg.Completer),
		modifier:   modification.New(),
		state:      entity.NewAgentState(sessionID),
	}
	a.resetFlow()
	return a
}

func (a *Agent) resetFlow() {
	if a.cfg.Adaptive {
		a.adaptive = decision.NewAdaptiveEngine(a.cfg.Decision)
		a.flow = decision.NewFlowManager(a.adaptive)
		return
	}
	engine := decision.NewThresholdEngine(a.cfg.Decision)
	a.adaptive = nil
	a.fixedThreshold = engine.Config().MinThreshold
	a.flow = decision.NewFlowManager(engine)
}

// Process 处理一轮用户输入。任何输入都不会返回错误；
// 单轮内部的 panic 会被恢复为普通回复，会话状态保持在本轮之前。
func (a *Agent) Process(ctx context.Context, utterance string) (resp AgentResponse) {
	start := time.Now()
	ctx = logger.WithContext(ctx, logger.SessionIDKey, a.state.SessionID)
	ctx, span := tracer.Start(ctx, "agent.Process",
		trace.WithAttributes(attribute.String("session.id", a.state.SessionID)))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			metrics.AgentRecoveredPanics.Inc()
			err := fmt.Errorf("agent turn panic: %v", r)
			tracer.RecordError(span, err)
			logger.Error(ctx, "agent turn recovered", err, "stack", string(debug.Stack()))
			resp = AgentResponse{
				Message:    "抱歉，我刚才没太理解，可以换个说法再说一次吗？",
				Confidence: 0,
				Metadata:   map[string]any{MetaIntent: entity.IntentChat, MetaTurn: a.state.TurnCount},
			}
		}
		metrics.AgentTurnDuration.Observe(time.Since(start).Seconds())
	}()

	st := a.state.Clone()
	st.TurnCount++
	st.AppendHistory(utterance, a.cfg.HistoryWindow)
	ctx = logger.WithContext(ctx, logger.TurnKey, st.TurnCount)

	rec := a.recognizer.Recognize(utterance)
	st.LastIntent = rec.Intent
	span.SetAttributes(
		attribute.String("agent.intent", string(rec.Intent)),
		attribute.Int("agent.turn", st.TurnCount),
	)

	meta := map[string]any{
		MetaIntent:       rec.Intent,
		MetaSettingTypes: rec.SettingTypes,
		MetaTurn:         st.TurnCount,
	}

	var pending *entity.CreationDecision
	switch rec.Intent {
	case entity.IntentCreate, entity.IntentSetting:
		resp, pending = a.handleSetting(ctx, st, utterance, meta)
	case entity.IntentModify:
		resp = a.handleModify(ctx, st, utterance, rec, meta)
	case entity.IntentQuery:
		resp = a.handleQuery(st, rec, meta)
	default:
		resp = a.handleChat(st, rec, meta)
	}

	st.UpdatedAt = time.Now()
	a.state = st
	if pending != nil {
		record := a.flow.RecordCreation(*pending, pending.SuggestedLength)
		logger.Info(ctx, "creation triggered",
			"trigger", pending.Trigger,
			"strategy", pending.Strategy,
			"chapter", record.Chapter,
			"confidence", pending.Confidence,
		)
	}

	metrics.AgentTurnsTotal.WithLabelValues(string(rec.Intent)).Inc()
	logger.Debug(ctx, "agent turn processed",
		"intent", rec.Intent,
		"intent_confidence", rec.Confidence,
		"should_create", resp.ShouldCreate,
	)
	return resp
}

// handleSetting 抽取 → 合并 → 冲突检测 → 就绪评估 → 补全 → 创作决策
func (a *Agent) handleSetting(ctx context.Context, st *entity.AgentState, utterance string, meta map[string]any) (AgentResponse, *entity.CreationDecision) {
	extracted := a.extractor.Extract(utterance, st.Settings, true)
	changes := conflict.DetectChange(st.Settings, extracted.Delta)
	st.Settings = extracted.Settings

	conflicts := append(changes, conflict.Detect(st.Settings)...)
	a.observeConflicts(conflicts)

	assessment := a.checker.Check(st.Settings)
	metrics.AgentReadinessScore.Observe(assessment.Score)

	var completion *completer.CompletionResult
	complete := func() *completer.CompletionResult {
		if completion == nil {
			c := a.completer.Complete(st.Settings, assessment.AutoCompletable, st.History)
			completion = &c
		}
		return completion
	}
	if assessment.IsReady {
		complete()
	}

	d := a.flow.Decide(entity.CreationContext{
		UserInput:        utterance,
		Settings:         st.Settings,
		Readiness:        assessment,
		TurnCount:        st.TurnCount,
		HasCreatedBefore: st.CreationStarted,
	})

	gated := false
	if d.ShouldCreate && a.cfg.GateOnHighConflicts && conflict.HasHighSeverity(conflicts) {
		gated = true
		d.ShouldCreate = false
		d.Trigger = entity.TriggerNone
		d.Reason = "存在需要先解决的设定冲突"
	}

	autoFilled := false
	if d.ShouldCreate {
		if c := complete(); c.Applied {
			st.Settings = c.Settings
			autoFilled = true
			for _, entry := range c.Log {
				logger.Debug(ctx, "setting auto-completed", "path", entry.Path, "value", entry.Value, "source", entry.Source)
			}
		}
		st.MarkCreationStarted()
		metrics.AgentCreationDecisions.WithLabelValues(string(d.Trigger), string(d.Strategy)).Inc()
	}

	meta[MetaDecision] = d
	a.annotate(meta, st.Settings, assessment, conflicts)

	resp := AgentResponse{
		Message:      settingMessage(extracted, assessment, d, conflicts, autoFilled, gated),
		ShouldCreate: d.ShouldCreate,
		Confidence:   d.Confidence,
		Metadata:     meta,
	}
	if !d.ShouldCreate {
		return resp, nil
	}
	return resp, &d
}

// handleModify 修改请求总是交给修改引擎处理
func (a *Agent) handleModify(ctx context.Context, st *entity.AgentState, utterance string, rec intent.Recognition, meta map[string]any) AgentResponse {
	res := a.modifier.Process(utterance, st.Settings)
	status := "failed"
	if res.Success {
		status = "applied"
		st.Settings = res.Settings
	}
	metrics.AgentModificationsTotal.WithLabelValues(string(res.Instruction.Type), status).Inc()
	logger.Debug(ctx, "modification processed",
		"type", res.Instruction.Type,
		"scope", res.Instruction.Scope,
		"target", res.Instruction.Target,
		"confidence", res.Confidence,
	)

	conflicts := conflict.Detect(st.Settings)
	assessment := a.checker.Check(st.Settings)
	meta[MetaModification] = res
	a.annotate(meta, st.Settings, assessment, conflicts)

	confidence := res.Confidence
	if !res.Success {
		confidence = rec.Confidence
	}
	return AgentResponse{
		Message:    modificationMessage(res),
		Confidence: confidence,
		Metadata:   meta,
	}
}

func (a *Agent) handleQuery(st *entity.AgentState, rec intent.Recognition, meta map[string]any) AgentResponse {
	assessment := a.checker.Check(st.Settings)
	a.annotate(meta, st.Settings, assessment, conflict.Detect(st.Settings))
	return AgentResponse{
		Message:    summaryMessage(st.Settings, assessment),
		Confidence: rec.Confidence,
		Metadata:   meta,
	}
}

func (a *Agent) handleChat(st *entity.AgentState, rec intent.Recognition, meta map[string]any) AgentResponse {
	assessment := a.checker.Check(st.Settings)
	a.annotate(meta, st.Settings, assessment, conflict.Detect(st.Settings))
	return AgentResponse{
		Message:    chatMessage(st, assessment),
		Confidence: rec.Confidence,
		Metadata:   meta,
	}
}

func (a *Agent) annotate(meta map[string]any, s entity.ExtractedSettings, assessment entity.ReadinessAssessment, conflicts []entity.Conflict) {
	meta[MetaReadiness] = assessment.Score
	meta[MetaSettings] = s.ToMap()
	meta[MetaConflicts] = len(conflicts)
	meta[MetaHighConflicts] = conflict.CountBySeverity(conflicts)[entity.ConflictSeverityHigh]
}

func (a *Agent) observeConflicts(conflicts []entity.Conflict) {
	for sev, n := range conflict.CountBySeverity(conflicts) {
		metrics.AgentConflictsTotal.WithLabelValues(string(sev)).Add(float64(n))
	}
}

// RecordSatisfaction 记录用户对最近一次创作的满意度，返回调整后的最低阈值。
// 未启用自适应时返回固定阈值与 false。
func (a *Agent) RecordSatisfaction(score float64) (float64, bool) {
	if a.adaptive == nil {
		return a.fixedThreshold, false
	}
	threshold := a.adaptive.UpdateSatisfaction(score)
	metrics.AgentAdaptiveThreshold.Set(threshold)
	return threshold, true
}

// Threshold 当前生效的最低创作阈值
func (a *Agent) Threshold() float64 {
	if a.adaptive != nil {
		return a.adaptive.Threshold()
	}
	return a.fixedThreshold
}

// Assess 对当前累积设定做一次就绪评估，不改变状态
func (a *Agent) Assess() entity.ReadinessAssessment {
	return a.checker.Check(a.state.Settings)
}

// State 返回当前状态副本
func (a *Agent) State() *entity.AgentState {
	return a.state.Clone()
}

// Stats 创作统计
func (a *Agent) Stats() decision.Stats {
	return a.flow.Stats()
}

// Reset 清空会话状态与创作历史，会话 ID 保持不变
func (a *Agent) Reset() {
	a.state = entity.NewAgentState(a.state.SessionID)
	a.resetFlow()
}
