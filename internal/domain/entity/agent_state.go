package entity

import "time"

// AgentState 单个会话的对话状态，只由对话编排器修改
type AgentState struct {
	SessionID       string            `json:"session_id"`
	Settings        ExtractedSettings `json:"settings"`
	TurnCount       int               `json:"turn_count"`
	CreationStarted bool              `json:"creation_started"`
	LastIntent      Intent            `json:"last_intent,omitempty"`
	History         []string          `json:"history,omitempty"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// NewAgentState 创建空会话状态
func NewAgentState(sessionID string) *AgentState {
	return &AgentState{
		SessionID: sessionID,
		UpdatedAt: time.Now(),
	}
}

// AppendHistory 追加用户发言，仅保留最近 window 条
func (s *AgentState) AppendHistory(utterance string, window int) {
	s.History = append(s.History, utterance)
	if window > 0 && len(s.History) > window {
		s.History = append([]string(nil), s.History[len(s.History)-window:]...)
	}
}

// MarkCreationStarted 单向锁存：一旦置为 true 不再恢复
func (s *AgentState) MarkCreationStarted() {
	s.CreationStarted = true
}

// Clone 深拷贝
func (s *AgentState) Clone() *AgentState {
	if s == nil {
		return nil
	}
	out := *s
	out.Settings = s.Settings.Clone()
	out.History = append([]string(nil), s.History...)
	return &out
}
