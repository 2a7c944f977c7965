package openai

import "encoding/json"

const (
	chatMessageRoleSystem    = "system"
	chatMessageRoleUser      = "user"
	chatMessageRoleAssistant = "assistant"
	chatMessageRoleTool      = "tool"
)

const toolTypeFunction = "function"

// Message is one entry of the flat chat-completion conversation. Content is
// a pointer because assistant messages that only carry tool calls send an
// explicit null content.
type Message struct {
	Role       string     `json:"role"`
	Content    *string    `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Tools are carried as raw JSON so fields the visual editor does not model
// reach the API verbatim.
type chatCompletionsRequest struct {
	Model       string            `json:"model"`
	Messages    []Message         `json:"messages"`
	Temperature float64           `json:"temperature"`
	TopP        float64           `json:"top_p"`
	Tools       []json.RawMessage `json:"tools,omitempty"`
}

type chatCompletionsResponse struct {
	Choices []chatCompletionChoice `json:"choices"`
}

type chatCompletionChoice struct {
	Message *responseMessage `json:"message"`
}

type responseMessage struct {
	Content   *string    `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls"`
}

type apiErrorResponse struct {
	Error *apiError `json:"error"`
}

type apiError struct {
	Message string `json:"message"`
}
