package domain

// GenerateResult is what a single completion call produces before the caller
// appends it to a session as an assistant message.
type GenerateResult struct {
	Text      string
	ToolCalls []ToolCall
}
