// Package messaging 提供 Redis Streams 消息投递
package messaging

import (
	"encoding/json"
	"time"
)

// Message 消息结构
type Message struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	SessionID string            `json:"session_id"`
	Payload   json.RawMessage   `json:"payload"`
	Metadata  map[string]string `json:"metadata"`
	CreatedAt time.Time         `json:"created_at"`
}

// NewMessage 创建新消息
func NewMessage(id, msgType, sessionID string, payload interface{}) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Message{
		ID:        id,
		Type:      msgType,
		SessionID: sessionID,
		Payload:   payloadBytes,
		Metadata:  make(map[string]string),
		CreatedAt: time.Now(),
	}, nil
}

// SetMetadata 设置元数据
func (m *Message) SetMetadata(key, value string) {
	if m.Metadata == nil {
		m.Metadata = make(map[string]string)
	}
	m.Metadata[key] = value
}

// UnmarshalPayload 解析消息载荷
func (m *Message) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(m.Payload, v)
}

// Stream 流定义
type Stream string

// StreamStoryGen 生成任务流，由外部生成服务消费
const StreamStoryGen Stream = "stream:story:gen"

// MessageTypeCreationJob 创作任务消息类型
const MessageTypeCreationJob = "creation_job"

// CreationJobMessage 创作任务：决策与生成所需的设定
type CreationJobMessage struct {
	JobID          string         `json:"job_id"`
	SessionID      string         `json:"session_id"`
	Turn           int            `json:"turn"`
	Strategy       string         `json:"strategy"`
	Trigger        string         `json:"trigger"`
	Confidence     float64        `json:"confidence"`
	Chapter        int            `json:"chapter"`
	TargetLength   int            `json:"target_length"`
	Reason         string         `json:"reason,omitempty"`
	Settings       map[string]any `json:"settings"`
	IdempotencyKey string         `json:"idempotency_key,omitempty"`
}
