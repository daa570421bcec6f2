package agent

import (
	"fmt"

	"z-novel-ai-agent/internal/application/agent/decision"
	"z-novel-ai-agent/internal/domain/entity"
	apperrors "z-novel-ai-agent/pkg/errors"
)

// Snapshot 代理的可持久化状态，跨进程恢复会话时使用
type Snapshot struct {
	Version int                `json:"version"`
	State   entity.AgentState  `json:"state"`
	Flow    decision.FlowState `json:"flow"`
}

const snapshotVersion = 1

// Snapshot 导出当前状态
func (a *Agent) Snapshot() Snapshot {
	return Snapshot{
		Version: snapshotVersion,
		State:   *a.state.Clone(),
		Flow:    a.flow.State(),
	}
}

// Restore 从快照恢复。快照违反状态不变量时返回 CodeStateCorrupted 错误，代理状态保持不变。
func (a *Agent) Restore(s Snapshot) error {
	if err := s.validate(); err != nil {
		return apperrors.ErrStateCorrupted.WithDetail(err.Error())
	}

	st := s.State
	a.state = st.Clone()
	a.resetFlow()
	a.flow.Restore(s.Flow)
	return nil
}

func (s Snapshot) validate() error {
	switch {
	case s.Version != snapshotVersion:
		return fmt.Errorf("unsupported snapshot version %d", s.Version)
	case s.State.SessionID == "":
		return fmt.Errorf("snapshot has no session id")
	case s.State.TurnCount < 0:
		return fmt.Errorf("negative turn count %d", s.State.TurnCount)
	case s.Flow.CurrentChapter < 0 || s.Flow.TotalWords < 0:
		return fmt.Errorf("negative creation progress")
	case len(s.Flow.History) > 0 && !s.State.CreationStarted:
		// 有创作记录却未锁存，说明快照被篡改或写坏
		return fmt.Errorf("creation history without creation_started")
	}
	return nil
}
