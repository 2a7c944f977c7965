package openai

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"promptpad/pkg/domain"
)

// ToWireMessages flattens the internal message list into the role-tagged
// array a chat-completion request expects. An assistant message carrying
// tool calls becomes one assistant wire message followed by one tool wire
// message per answered call, in call order. Unanswered calls emit nothing;
// sending such a conversation is the caller's choice.
func ToWireMessages(messages []domain.Message) []Message {
	wire := make([]Message, 0, len(messages))
	for _, m := range messages {
		if m.IsToolCall() {
			wire = append(wire, assistantToolCallMessage(m))
			for _, tc := range m.ToolCalls {
				if !tc.Answered() {
					continue
				}
				result := tc.Result
				wire = append(wire, Message{
					Role:       chatMessageRoleTool,
					Content:    &result,
					ToolCallID: tc.ID,
				})
			}
			continue
		}

		content := m.Content
		wire = append(wire, Message{
			Role:    wireRole(m.Role),
			Content: &content,
		})
	}
	return wire
}

func assistantToolCallMessage(m domain.Message) Message {
	var content *string
	if m.Content != "" {
		c := m.Content
		content = &c
	}

	calls := make([]ToolCall, 0, len(m.ToolCalls))
	for _, tc := range m.ToolCalls {
		args := []byte("{}")
		if tc.Args != nil {
			if b, err := json.Marshal(tc.Args); err == nil {
				args = b
			}
		}
		calls = append(calls, ToolCall{
			ID:   tc.ID,
			Type: toolTypeFunction,
			Function: FunctionCall{
				Name:      tc.Name,
				Arguments: string(args),
			},
		})
	}

	return Message{
		Role:      chatMessageRoleAssistant,
		Content:   content,
		ToolCalls: calls,
	}
}

type callRef struct {
	msgIdx  int
	callIdx int
}

// FromWireMessages rebuilds the internal message list from a flat wire
// conversation. Tool-role messages never become visible messages; each one
// is folded into the result of the tool call that requested it, located by
// tool_call_id. A tool message whose id is unknown is dropped. Malformed
// call arguments decode to an empty map.
func FromWireMessages(wire []Message) []domain.Message {
	messages := make([]domain.Message, 0, len(wire))
	refs := make(map[string]callRef)

	for _, wm := range wire {
		if wm.Role == chatMessageRoleTool {
			ref, ok := refs[wm.ToolCallID]
			if !ok {
				continue
			}
			if wm.Content != nil {
				messages[ref.msgIdx].ToolCalls[ref.callIdx].Result = *wm.Content
			}
			continue
		}

		msg := domain.Message{
			ID:        uuid.NewString(),
			Role:      internalRole(wm.Role),
			Timestamp: time.Now(),
		}
		if wm.Content != nil {
			msg.Content = *wm.Content
		}
		for i, tc := range wm.ToolCalls {
			name := tc.Function.Name
			if name == "" {
				name = "unknown"
			}
			args := map[string]any{}
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
				args = map[string]any{}
			}
			msg.ToolCalls = append(msg.ToolCalls, domain.ToolCall{
				ID:   tc.ID,
				Name: name,
				Args: args,
			})
			refs[tc.ID] = callRef{msgIdx: len(messages), callIdx: i}
		}
		messages = append(messages, msg)
	}
	return messages
}

func wireRole(role domain.Role) string {
	if role == domain.RoleModel {
		return chatMessageRoleAssistant
	}
	return string(role)
}

func internalRole(role string) domain.Role {
	switch role {
	case chatMessageRoleAssistant:
		return domain.RoleModel
	case chatMessageRoleSystem:
		return domain.RoleSystem
	default:
		return domain.RoleUser
	}
}
