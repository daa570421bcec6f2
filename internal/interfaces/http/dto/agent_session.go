package dto

import (
	"time"

	"z-novel-ai-agent/internal/application/agent"
	"z-novel-ai-agent/internal/application/agent/decision"
	"z-novel-ai-agent/internal/application/session"
	"z-novel-ai-agent/internal/domain/entity"
)

// SendMessageRequest 发送消息请求
type SendMessageRequest struct {
	Content string `json:"content" binding:"required,max=4000"`
}

// FeedbackRequest 满意度反馈请求
type FeedbackRequest struct {
	Score *float64 `json:"score" binding:"required"`
}

// AgentSessionResponse 会话详情
type AgentSessionResponse struct {
	ID              string            `json:"id"`
	TurnCount       int               `json:"turn_count"`
	CreationStarted bool              `json:"creation_started"`
	LastIntent      entity.Intent     `json:"last_intent,omitempty"`
	Settings        map[string]any    `json:"settings"`
	Readiness       ReadinessResponse `json:"readiness"`
	Stats           decision.Stats    `json:"stats"`
	Threshold       float64           `json:"threshold"`
	UpdatedAt       string            `json:"updated_at"`
}

// ReadinessResponse 就绪评估
type ReadinessResponse struct {
	IsReady           bool                 `json:"is_ready"`
	Score             float64              `json:"score"`
	RecommendedAction string               `json:"recommended_action"`
	MissingCritical   []entity.MissingInfo `json:"missing_critical,omitempty"`
	AutoCompletable   []entity.MissingInfo `json:"auto_completable,omitempty"`
}

// AgentReplyResponse 单轮回复
type AgentReplyResponse struct {
	SessionID    string                   `json:"session_id"`
	Turn         int                      `json:"turn"`
	Message      string                   `json:"message"`
	ShouldCreate bool                     `json:"should_create"`
	Confidence   float64                  `json:"confidence"`
	Decision     *entity.CreationDecision `json:"decision,omitempty"`
	JobID        string                   `json:"job_id,omitempty"`
	Metadata     map[string]any           `json:"metadata"`
}

// FeedbackResponse 满意度反馈结果
type FeedbackResponse struct {
	SessionID string  `json:"session_id"`
	Threshold float64 `json:"threshold"`
	Adaptive  bool    `json:"adaptive"`
}

// AgentTurnResponse 轮次日志条目
type AgentTurnResponse struct {
	ID           string   `json:"id"`
	Turn         int      `json:"turn"`
	Role         string   `json:"role"`
	Content      string   `json:"content"`
	Intent       string   `json:"intent,omitempty"`
	SettingTypes []string `json:"setting_types,omitempty"`
	ShouldCreate bool     `json:"should_create"`
	Metadata     any      `json:"metadata,omitempty"`
	CreatedAt    string   `json:"created_at"`
}

// ToAgentSessionResponse 转换会话概览
func ToAgentSessionResponse(v *session.View) *AgentSessionResponse {
	if v == nil || v.State == nil {
		return nil
	}
	return &AgentSessionResponse{
		ID:              v.SessionID,
		TurnCount:       v.State.TurnCount,
		CreationStarted: v.State.CreationStarted,
		LastIntent:      v.State.LastIntent,
		Settings:        v.State.Settings.ToMap(),
		Readiness: ReadinessResponse{
			IsReady:           v.Readiness.IsReady,
			Score:             v.Readiness.Score,
			RecommendedAction: string(v.Readiness.RecommendedAction),
			MissingCritical:   v.Readiness.MissingCritical,
			AutoCompletable:   v.Readiness.AutoCompletable,
		},
		Stats:     v.Stats,
		Threshold: v.Threshold,
		UpdatedAt: v.State.UpdatedAt.Format(time.RFC3339),
	}
}

// ToAgentReplyResponse 转换单轮回复
func ToAgentReplyResponse(r *session.TurnResult) *AgentReplyResponse {
	if r == nil {
		return nil
	}
	resp := &AgentReplyResponse{
		SessionID:    r.SessionID,
		Turn:         r.Turn,
		Message:      r.Response.Message,
		ShouldCreate: r.Response.ShouldCreate,
		Confidence:   r.Response.Confidence,
		JobID:        r.JobID,
		Metadata:     make(map[string]any, len(r.Response.Metadata)),
	}
	for k, v := range r.Response.Metadata {
		if k == agent.MetaDecision {
			continue
		}
		resp.Metadata[k] = v
	}
	if d, ok := r.Response.Decision(); ok {
		resp.Decision = &d
	}
	return resp
}

// ToAgentTurnResponses 转换轮次日志
func ToAgentTurnResponses(turns []*entity.AgentTurn) []*AgentTurnResponse {
	out := make([]*AgentTurnResponse, 0, len(turns))
	for _, t := range turns {
		if t == nil {
			continue
		}
		item := &AgentTurnResponse{
			ID:           t.ID,
			Turn:         t.TurnIndex,
			Role:         string(t.Role),
			Content:      t.Content,
			Intent:       string(t.Intent),
			SettingTypes: []string(t.SettingTypes),
			ShouldCreate: t.ShouldCreate,
			CreatedAt:    t.CreatedAt.Format(time.RFC3339),
		}
		if len(t.Metadata) > 0 {
			item.Metadata = t.Metadata
		}
		out = append(out, item)
	}
	return out
}
