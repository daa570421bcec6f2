// Package session 管理对话代理会话：单会话串行、快照持久化、轮次日志与创作任务投递
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"z-novel-ai-agent/internal/application/agent"
	"z-novel-ai-agent/internal/application/agent/decision"
	"z-novel-ai-agent/internal/domain/entity"
	"z-novel-ai-agent/internal/domain/repository"
	"z-novel-ai-agent/internal/infrastructure/messaging"
	apperrors "z-novel-ai-agent/pkg/errors"
	"z-novel-ai-agent/pkg/logger"
	"z-novel-ai-agent/pkg/metrics"
)

// DefaultTTL 会话快照默认存活时间
const DefaultTTL = 72 * time.Hour

// JobPublisher 创作任务投递
type JobPublisher interface {
	PublishCreationJob(ctx context.Context, job *messaging.CreationJobMessage) (string, error)
}

// Options 会话服务选项
type Options struct {
	TTL time.Duration
	// RecordTurns 为 true 且配置了轮次仓储时写入轮次日志
	RecordTurns bool
	// PublishCreations 为 true 且配置了投递器时在创作触发后投递任务
	PublishCreations bool
}

// Service 会话服务。同一会话的写操作在进程内串行执行。
type Service struct {
	factory   *agent.Factory
	store     repository.SessionStore
	turns     repository.AgentTurnRepository
	publisher JobPublisher
	opts      Options
	locks     *keyedMutex
}

// NewService 创建会话服务，turns 与 publisher 可以为 nil
func NewService(factory *agent.Factory, store repository.SessionStore, turns repository.AgentTurnRepository, publisher JobPublisher, opts Options) *Service {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	return &Service{
		factory:   factory,
		store:     store,
		turns:     turns,
		publisher: publisher,
		opts:      opts,
		locks:     newKeyedMutex(),
	}
}

// View 会话概览
type View struct {
	SessionID string                     `json:"session_id"`
	State     *entity.AgentState         `json:"state"`
	Readiness entity.ReadinessAssessment `json:"readiness"`
	Stats     decision.Stats             `json:"stats"`
	Threshold float64                    `json:"threshold"`
}

// TurnResult 单轮处理结果
type TurnResult struct {
	SessionID string              `json:"session_id"`
	Turn      int                 `json:"turn"`
	Response  agent.AgentResponse `json:"response"`
	// JobID 投递的创作任务 ID，未投递时为空
	JobID string `json:"job_id,omitempty"`
}

// FeedbackResult 满意度反馈结果
type FeedbackResult struct {
	SessionID string  `json:"session_id"`
	Threshold float64 `json:"threshold"`
	Adaptive  bool    `json:"adaptive"`
}

// Create 创建新会话
func (s *Service) Create(ctx context.Context) (*View, error) {
	id := uuid.NewString()
	a := s.factory.New(id)
	if err := s.save(ctx, a); err != nil {
		return nil, err
	}
	metrics.ActiveSessions.Inc()
	logger.Info(logger.WithContext(ctx, logger.SessionIDKey, id), "agent session created")
	return view(a), nil
}

// Get 查询会话
func (s *Service) Get(ctx context.Context, sessionID string) (*View, error) {
	a, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return view(a), nil
}

// Send 处理一轮用户输入。创作触发时先投递任务再保存状态，
// 投递失败则本轮不生效，调用方可以原样重试。
func (s *Service) Send(ctx context.Context, sessionID, utterance string) (*TurnResult, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	ctx = logger.WithContext(ctx, logger.SessionIDKey, sessionID)
	a, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	resp := a.Process(ctx, utterance)
	st := a.State()
	result := &TurnResult{
		SessionID: sessionID,
		Turn:      st.TurnCount,
		Response:  resp,
	}

	if resp.ShouldCreate && s.opts.PublishCreations && s.publisher != nil {
		d, _ := resp.Decision()
		job := &messaging.CreationJobMessage{
			JobID:          uuid.NewString(),
			SessionID:      sessionID,
			Turn:           st.TurnCount,
			Strategy:       string(d.Strategy),
			Trigger:        string(d.Trigger),
			Confidence:     d.Confidence,
			Chapter:        d.SuggestedChapter,
			TargetLength:   d.SuggestedLength,
			Reason:         d.Reason,
			Settings:       st.Settings.ToMap(),
			IdempotencyKey: fmt.Sprintf("%s:%d", sessionID, st.TurnCount),
		}
		if _, err := s.publisher.PublishCreationJob(ctx, job); err != nil {
			logger.Error(ctx, "failed to publish creation job", err, "turn", st.TurnCount)
			return nil, apperrors.ErrPublishFailed.WithError(err)
		}
		result.JobID = job.JobID
	}

	if err := s.save(ctx, a); err != nil {
		return nil, err
	}
	s.recordTurns(ctx, sessionID, utterance, result)
	return result, nil
}

// Feedback 记录用户对最近一次创作的满意度，score 取值 [0, 1]
func (s *Service) Feedback(ctx context.Context, sessionID string, score float64) (*FeedbackResult, error) {
	if score < 0 || score > 1 {
		return nil, apperrors.ErrInvalidParam.WithDetail("score must be within [0, 1]")
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	a, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	threshold, adaptive := a.RecordSatisfaction(score)
	if err := s.save(ctx, a); err != nil {
		return nil, err
	}
	return &FeedbackResult{SessionID: sessionID, Threshold: threshold, Adaptive: adaptive}, nil
}

// Reset 清空会话设定与创作进度，会话 ID 与轮次日志保留
func (s *Service) Reset(ctx context.Context, sessionID string) (*View, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	a, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	a.Reset()
	if err := s.save(ctx, a); err != nil {
		return nil, err
	}
	return view(a), nil
}

// Delete 删除会话快照与轮次日志
func (s *Service) Delete(ctx context.Context, sessionID string) error {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	if _, err := s.load(ctx, sessionID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return apperrors.Wrap(err, apperrors.CodeCacheError, "failed to delete session")
	}
	if s.turns != nil {
		if err := s.turns.DeleteBySession(ctx, sessionID); err != nil {
			return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to delete session turns")
		}
	}
	metrics.ActiveSessions.Dec()
	return nil
}

// Turns 分页查询轮次日志，未启用轮次日志时返回空结果
func (s *Service) Turns(ctx context.Context, sessionID string, pagination repository.Pagination) (*repository.PagedResult[*entity.AgentTurn], error) {
	if _, err := s.load(ctx, sessionID); err != nil {
		return nil, err
	}
	if s.turns == nil {
		return repository.NewPagedResult([]*entity.AgentTurn{}, 0, pagination), nil
	}
	result, err := s.turns.ListBySession(ctx, sessionID, pagination)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list session turns")
	}
	return result, nil
}

func (s *Service) load(ctx context.Context, sessionID string) (*agent.Agent, error) {
	if sessionID == "" {
		return nil, apperrors.ErrInvalidParam.WithDetail("session id is required")
	}
	data, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeCacheError, "failed to load session")
	}
	if data == nil {
		return nil, apperrors.ErrSessionNotFound.WithDetail(sessionID)
	}

	var snap agent.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		logger.Error(ctx, "undecodable session snapshot", err)
		return nil, apperrors.ErrStateCorrupted.WithError(err)
	}
	if snap.State.SessionID != sessionID {
		return nil, apperrors.ErrStateCorrupted.WithDetail("snapshot belongs to another session")
	}

	a := s.factory.New(sessionID)
	if err := a.Restore(snap); err != nil {
		logger.Error(ctx, "invalid session snapshot", err)
		return nil, err
	}
	return a, nil
}

func (s *Service) save(ctx context.Context, a *agent.Agent) error {
	snap := a.Snapshot()
	data, err := json.Marshal(snap)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternalError, "failed to encode session")
	}
	if err := s.store.Save(ctx, snap.State.SessionID, data, s.opts.TTL); err != nil {
		return apperrors.Wrap(err, apperrors.CodeCacheError, "failed to save session")
	}
	return nil
}

// recordTurns 写入轮次日志。日志是旁路数据，失败只记录告警。
func (s *Service) recordTurns(ctx context.Context, sessionID, utterance string, result *TurnResult) {
	if !s.opts.RecordTurns || s.turns == nil {
		return
	}

	resp := result.Response
	intent, _ := resp.Metadata[agent.MetaIntent].(entity.Intent)

	user := entity.NewAgentTurn(sessionID, result.Turn, entity.RoleUser, utterance)
	user.Intent = intent
	if types, ok := resp.Metadata[agent.MetaSettingTypes].([]entity.SettingType); ok {
		for _, t := range types {
			user.SettingTypes = append(user.SettingTypes, string(t))
		}
	}
	if user.SettingTypes == nil {
		user.SettingTypes = pq.StringArray{}
	}

	reply := entity.NewAgentTurn(sessionID, result.Turn, entity.RoleAssistant, resp.Message)
	reply.Intent = intent
	reply.ShouldCreate = resp.ShouldCreate
	if meta, err := json.Marshal(turnMetadata(resp, result.JobID)); err == nil {
		reply.Metadata = meta
	}

	if err := s.turns.CreateBatch(ctx, []*entity.AgentTurn{user, reply}); err != nil {
		logger.Warn(ctx, "failed to record agent turns", "error", err, "turn", result.Turn)
	}
}

func turnMetadata(resp agent.AgentResponse, jobID string) map[string]any {
	meta := map[string]any{
		"confidence": resp.Confidence,
	}
	for _, k := range []string{agent.MetaReadiness, agent.MetaDecision, agent.MetaConflicts, agent.MetaHighConflicts, agent.MetaModification} {
		if v, ok := resp.Metadata[k]; ok {
			meta[k] = v
		}
	}
	if jobID != "" {
		meta["job_id"] = jobID
	}
	return meta
}

func view(a *agent.Agent) *View {
	st := a.State()
	return &View{
		SessionID: st.SessionID,
		State:     st,
		Readiness: a.Assess(),
		Stats:     a.Stats(),
		Threshold: a.Threshold(),
	}
}
