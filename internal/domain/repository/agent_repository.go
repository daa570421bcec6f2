// Package repository 定义数据访问层接口
package repository

import (
	"context"
	"time"

	"z-novel-ai-agent/internal/domain/entity"
)

// AgentTurnRepository 对话轮次日志仓储
type AgentTurnRepository interface {
	Create(ctx context.Context, turn *entity.AgentTurn) error
	// CreateBatch 同一事务内写入一轮的用户发言与代理回复
	CreateBatch(ctx context.Context, turns []*entity.AgentTurn) error
	ListBySession(ctx context.Context, sessionID string, pagination Pagination) (*PagedResult[*entity.AgentTurn], error)
	DeleteBySession(ctx context.Context, sessionID string) error
}

// SessionStore 会话快照存储。快照内容对存储层不透明。
type SessionStore interface {
	// Load 读取快照，会话不存在时返回 nil, nil
	Load(ctx context.Context, sessionID string) ([]byte, error)
	Save(ctx context.Context, sessionID string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string) error
}
