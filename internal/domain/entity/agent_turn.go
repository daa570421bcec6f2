package entity

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

// AgentTurn 对话轮次日志
type AgentTurn struct {
	ID           string          `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionID    string          `json:"session_id" gorm:"type:varchar(64);index;not null"`
	TurnIndex    int             `json:"turn_index" gorm:"not null"`
	Role         Role            `json:"role" gorm:"type:varchar(16);not null"`
	Content      string          `json:"content" gorm:"type:text;not null"`
	Intent       Intent          `json:"intent,omitempty" gorm:"type:varchar(16)"`
	SettingTypes pq.StringArray  `json:"setting_types,omitempty" gorm:"type:text[]"`
	ShouldCreate bool            `json:"should_create" gorm:"not null;default:false"`
	Metadata     json.RawMessage `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt    time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

func (AgentTurn) TableName() string {
	return "agent_turns"
}

func NewAgentTurn(sessionID string, turnIndex int, role Role, content string) *AgentTurn {
	return &AgentTurn{
		SessionID: sessionID,
		TurnIndex: turnIndex,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
}
