package domain

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	CreatedAt time.Time     `json:"createdAt"`
	Messages  []Message     `json:"messages"`
	Config    SessionConfig `json:"config"`
}

type SessionConfig struct {
	Model           string  `json:"model"`
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	ToolsDefinition string  `json:"toolsDefinition"`
}

// ConfigPatch carries a partial config update; nil fields are left untouched.
type ConfigPatch struct {
	Model           *string  `json:"model,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty"`
	TopP            *float64 `json:"topP,omitempty"`
	TopK            *int     `json:"topK,omitempty"`
	MaxOutputTokens *int     `json:"maxOutputTokens,omitempty"`
	ToolsDefinition *string  `json:"toolsDefinition,omitempty"`
}

func (p ConfigPatch) ApplyTo(config *SessionConfig) {
	if p.Model != nil {
		config.Model = *p.Model
	}
	if p.Temperature != nil {
		config.Temperature = *p.Temperature
	}
	if p.TopP != nil {
		config.TopP = *p.TopP
	}
	if p.TopK != nil {
		config.TopK = *p.TopK
	}
	if p.MaxOutputTokens != nil {
		config.MaxOutputTokens = *p.MaxOutputTokens
	}
	if p.ToolsDefinition != nil {
		config.ToolsDefinition = *p.ToolsDefinition
	}
}

// MessagePatch carries a partial message update; nil fields are left untouched.
type MessagePatch struct {
	Role      *Role       `json:"role,omitempty"`
	Content   *string     `json:"content,omitempty"`
	ToolCalls *[]ToolCall `json:"toolCalls,omitempty"`
	IsError   *bool       `json:"isError,omitempty"`
}

func (p MessagePatch) ApplyTo(msg *Message) {
	if p.Role != nil {
		msg.Role = *p.Role
	}
	if p.Content != nil {
		msg.Content = *p.Content
	}
	if p.ToolCalls != nil {
		msg.ToolCalls = *p.ToolCalls
	}
	if p.IsError != nil {
		msg.IsError = *p.IsError
	}
}

// NewSession creates a named session seeded with a system prompt, matching
// what a fresh playground session starts out with.
func NewSession() Session {
	now := time.Now()
	return Session{
		ID:        uuid.NewString(),
		Name:      "Untitled Session " + now.Format("15:04:05"),
		CreatedAt: now,
		Messages: []Message{
			NewMessage(RoleSystem, "You are a helpful AI assistant."),
		},
		Config: DefaultConfig(),
	}
}
