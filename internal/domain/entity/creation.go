package entity

import "time"

// CreationTrigger 触发创作的原因
type CreationTrigger string

const (
	TriggerNone               CreationTrigger = "none"
	TriggerExplicitRequest    CreationTrigger = "explicit_request"
	TriggerUserContinue       CreationTrigger = "user_continue"
	TriggerReadinessThreshold CreationTrigger = "readiness_threshold"
	TriggerForcedTimeout      CreationTrigger = "forced_timeout"
)

// CreationStrategy 生成模式
type CreationStrategy string

const (
	StrategyFull     CreationStrategy = "full"
	StrategyContinue CreationStrategy = "continue"
	StrategyExpand   CreationStrategy = "expand"
	StrategyRewrite  CreationStrategy = "rewrite"
	StrategyOutline  CreationStrategy = "outline"
)

// CreationContext 创作决策的输入
type CreationContext struct {
	UserInput        string              `json:"user_input"`
	Settings         ExtractedSettings   `json:"-"`
	Readiness        ReadinessAssessment `json:"readiness"`
	TurnCount        int                 `json:"turn_count"`
	HasCreatedBefore bool                `json:"has_created_before"`
	CurrentChapter   int                 `json:"current_chapter"`
}

// CreationDecision 创作决策
type CreationDecision struct {
	ShouldCreate     bool             `json:"should_create"`
	Confidence       float64          `json:"confidence"`
	Trigger          CreationTrigger  `json:"trigger"`
	Strategy         CreationStrategy `json:"strategy"`
	Reason           string           `json:"reason,omitempty"`
	SuggestedChapter int              `json:"suggested_chapter,omitempty"` // 0 表示未指定
	SuggestedLength  int              `json:"suggested_length,omitempty"`
}

// CreationRecord 创作历史记录（只追加）
type CreationRecord struct {
	Decision  CreationDecision `json:"decision"`
	Chapter   int              `json:"chapter"`
	WordCount int              `json:"word_count"`
	CreatedAt time.Time        `json:"created_at"`
}
