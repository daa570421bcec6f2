package entity

// Intent 用户意图
type Intent string

const (
	IntentCreate  Intent = "create"
	IntentModify  Intent = "modify"
	IntentQuery   Intent = "query"
	IntentSetting Intent = "setting"
	IntentChat    Intent = "chat"
)

// MissingInfo 缺失的设定项
type MissingInfo struct {
	SettingType SettingType `json:"setting_type"`
	Field       string      `json:"field"`
	Priority    int         `json:"priority"` // 1 阻塞 ... 4 可忽略
	Question    string      `json:"question,omitempty"`
}

// ConflictSeverity 冲突严重程度
type ConflictSeverity string

const (
	ConflictSeverityLow    ConflictSeverity = "low"
	ConflictSeverityMedium ConflictSeverity = "medium"
	ConflictSeverityHigh   ConflictSeverity = "high"
)

// ConflictType 冲突类别
type ConflictType string

const (
	ConflictTypeWorldType   ConflictType = "world_type"
	ConflictTypeEra         ConflictType = "era"
	ConflictTypePOV         ConflictType = "pov"
	ConflictTypeTense       ConflictType = "tense"
	ConflictTypePersonality ConflictType = "personality"
	ConflictTypeAbility     ConflictType = "ability"
	ConflictTypeToneGenre   ConflictType = "tone_genre"
	ConflictTypeAgeRole     ConflictType = "age_role"
)

// Conflict 设定冲突
type Conflict struct {
	Type          ConflictType     `json:"type"`
	SettingType   SettingType      `json:"setting_type"`
	Field         string           `json:"field"`
	OriginalValue string           `json:"original_value,omitempty"`
	NewValue      string           `json:"new_value,omitempty"`
	Severity      ConflictSeverity `json:"severity"`
	Description   string           `json:"description"`
	Suggestion    string           `json:"suggestion,omitempty"`
}

// ReadinessAction 就绪评估给出的建议动作
type ReadinessAction string

const (
	ReadinessActionAskCharacters ReadinessAction = "ask_characters"
	ReadinessActionGatherMore    ReadinessAction = "gather_more"
	ReadinessActionReady         ReadinessAction = "ready_to_create"
)

// ReadinessAssessment 创作就绪评估
type ReadinessAssessment struct {
	IsReady           bool            `json:"is_ready"`
	Score             float64         `json:"score"`
	MissingCritical   []MissingInfo   `json:"missing_critical,omitempty"`
	AutoCompletable   []MissingInfo   `json:"auto_completable,omitempty"`
	RecommendedAction ReadinessAction `json:"recommended_action"`
}

// ModificationScope 修改作用范围
type ModificationScope string

const (
	ModificationScopeCharacter ModificationScope = "character"
	ModificationScopeWorld     ModificationScope = "world"
	ModificationScopePlot      ModificationScope = "plot"
	ModificationScopeStyle     ModificationScope = "style"
	ModificationScopeUnknown   ModificationScope = "unknown"
)

// ModificationType 修改类型
type ModificationType string

const (
	ModificationTypeAdjustTrait ModificationType = "adjust_trait"
	ModificationTypeSetField    ModificationType = "set_field"
	ModificationTypeReplace     ModificationType = "replace"
	ModificationTypeShiftTone   ModificationType = "shift_tone"
	ModificationTypeGeneric     ModificationType = "generic"
)

// ModificationInstruction 从自然语言中解析出的修改指令
type ModificationInstruction struct {
	Scope      ModificationScope `json:"scope"`
	Type       ModificationType  `json:"type"`
	Target     string            `json:"target,omitempty"`
	Field      string            `json:"field,omitempty"`
	NewValue   string            `json:"new_value,omitempty"`
	Confidence float64           `json:"confidence"`
	Raw        string            `json:"raw"`
}

// ModificationResult 修改结果，Settings 为修改后的新副本
type ModificationResult struct {
	Success     bool                    `json:"success"`
	Instruction ModificationInstruction `json:"instruction"`
	Settings    ExtractedSettings       `json:"settings"`
	Changes     []string                `json:"changes_description,omitempty"`
	Warnings    []string                `json:"warnings,omitempty"`
	Confidence  float64                 `json:"confidence"`
}
