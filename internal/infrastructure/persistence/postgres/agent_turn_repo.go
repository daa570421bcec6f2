package postgres

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"z-novel-ai-agent/internal/domain/entity"
	"z-novel-ai-agent/internal/domain/repository"
)

// AgentTurnRepository 对话轮次日志
type AgentTurnRepository struct {
	client *Client
	tx     *TxManager
}

// NewAgentTurnRepository 创建轮次仓储
func NewAgentTurnRepository(client *Client) *AgentTurnRepository {
	return &AgentTurnRepository{client: client, tx: NewTxManager(client)}
}

func (r *AgentTurnRepository) Create(ctx context.Context, turn *entity.AgentTurn) error {
	ctx, span := tracer.Start(ctx, "postgres.AgentTurnRepository.Create",
		trace.WithAttributes(attribute.String("session.id", turn.SessionID)))
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(turn).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create agent turn: %w", err)
	}
	return nil
}

func (r *AgentTurnRepository) CreateBatch(ctx context.Context, turns []*entity.AgentTurn) error {
	if len(turns) == 0 {
		return nil
	}
	ctx, span := tracer.Start(ctx, "postgres.AgentTurnRepository.CreateBatch",
		trace.WithAttributes(attribute.Int("turn.count", len(turns))))
	defer span.End()

	err := r.tx.WithTransaction(ctx, func(ctx context.Context) error {
		for _, turn := range turns {
			if err := r.Create(ctx, turn); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (r *AgentTurnRepository) ListBySession(ctx context.Context, sessionID string, pagination repository.Pagination) (*repository.PagedResult[*entity.AgentTurn], error) {
	ctx, span := tracer.Start(ctx, "postgres.AgentTurnRepository.ListBySession",
		trace.WithAttributes(attribute.String("session.id", sessionID)))
	defer span.End()

	db := getDB(ctx, r.client.db)
	query := db.Model(&entity.AgentTurn{}).Where("session_id = ?", sessionID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count agent turns: %w", err)
	}

	var turns []*entity.AgentTurn
	if err := query.Order("turn_index ASC").
		Order("created_at ASC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Find(&turns).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list agent turns: %w", err)
	}

	return repository.NewPagedResult(turns, total, pagination), nil
}

func (r *AgentTurnRepository) DeleteBySession(ctx context.Context, sessionID string) error {
	ctx, span := tracer.Start(ctx, "postgres.AgentTurnRepository.DeleteBySession",
		trace.WithAttributes(attribute.String("session.id", sessionID)))
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Where("session_id = ?", sessionID).Delete(&entity.AgentTurn{}).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete agent turns: %w", err)
	}
	return nil
}
