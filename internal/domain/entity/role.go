package entity

// Role 对话参与方
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)
