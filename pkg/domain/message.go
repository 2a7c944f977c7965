package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser   Role = "user"
	RoleModel  Role = "model"
	RoleSystem Role = "system"
	RoleTool   Role = "tool"
)

type Message struct {
	ID        string     `json:"id"`
	Role      Role       `json:"role"`
	Content   string     `json:"content"`
	Timestamp time.Time  `json:"timestamp"`
	ToolCalls []ToolCall `json:"toolCalls,omitempty"`
	IsError   bool       `json:"isError,omitempty"`
}

type ToolCall struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Args   map[string]any `json:"args"`
	Result string         `json:"result,omitempty"`
}

func NewMessage(role Role, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// IsToolCall is derived from ToolCalls so the two can never disagree.
func (m Message) IsToolCall() bool {
	return len(m.ToolCalls) > 0
}

// Answered reports whether a result has been supplied. An empty result
// means "not yet answered"; the result text itself is never interpreted.
func (t ToolCall) Answered() bool {
	return t.Result != ""
}

func (m Message) MarshalJSON() ([]byte, error) {
	type alias Message
	return json.Marshal(struct {
		alias
		IsToolCall bool `json:"isToolCall,omitempty"`
	}{alias(m), m.IsToolCall()})
}
