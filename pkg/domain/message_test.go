package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestMessageMarshalDerivesIsToolCall(t *testing.T) {
	plain := NewMessage(RoleUser, "hi")
	data, err := json.Marshal(plain)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "isToolCall") {
		t.Errorf("plain message must not carry isToolCall: %s", data)
	}

	withCall := NewMessage(RoleModel, "")
	withCall.ToolCalls = []ToolCall{{ID: "call_1", Name: "f", Args: map[string]any{}}}
	data, err = json.Marshal(withCall)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"isToolCall":true`) {
		t.Errorf("tool-call message must carry isToolCall: %s", data)
	}
}

func TestMessageRoundTrip(t *testing.T) {
	original := NewMessage(RoleModel, "")
	original.ToolCalls = []ToolCall{{ID: "call_1", Name: "f", Args: map[string]any{"x": "1"}, Result: "ok"}}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatal(err)
	}
	var decoded Message
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}

	if decoded.ID != original.ID || decoded.Role != original.Role {
		t.Errorf("got %+v, want %+v", decoded, original)
	}
	if !decoded.IsToolCall() {
		t.Error("decoded message lost its tool calls")
	}
	if !decoded.ToolCalls[0].Answered() {
		t.Error("decoded tool call lost its result")
	}
}

func TestToolCallAnswered(t *testing.T) {
	call := ToolCall{ID: "call_1", Name: "f", Args: map[string]any{}}
	if call.Answered() {
		t.Error("a call without a result is unanswered")
	}
	call.Result = "15C"
	if !call.Answered() {
		t.Error("a call with a result is answered")
	}
}

func TestConfigPatchApplyTo(t *testing.T) {
	config := DefaultConfig()
	model := "gpt-4o-mini"
	topK := 40

	ConfigPatch{Model: &model, TopK: &topK}.ApplyTo(&config)

	if config.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", config.Model)
	}
	if config.TopK != 40 {
		t.Errorf("topK = %d", config.TopK)
	}
	if config.Temperature != 0.7 {
		t.Errorf("temperature must stay untouched, got %v", config.Temperature)
	}
}

func TestMessagePatchApplyTo(t *testing.T) {
	msg := NewMessage(RoleUser, "before")
	content := "after"
	role := RoleSystem

	MessagePatch{Content: &content, Role: &role}.ApplyTo(&msg)

	if msg.Content != "after" || msg.Role != RoleSystem {
		t.Errorf("got %+v", msg)
	}
	if msg.IsError {
		t.Error("isError must stay untouched")
	}
}
