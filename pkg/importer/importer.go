// Package importer turns an arbitrary user-supplied JSON document into a
// Session. Three shapes are recognized, tried in order: a native session
// export, a raw chat-completion payload, and a bare message array. Anything
// else is rejected whole; an import is never partially applied.
package importer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"promptpad/pkg/domain"
	"promptpad/pkg/openai"
)

func Resolve(data []byte) (*domain.Session, error) {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("parsing import document: %w", err)
	}

	switch value.(type) {
	case map[string]any:
		return resolveObject(data)
	case []any:
		return resolveMessageArray(data)
	}
	return nil, domain.ErrUnknownImportFormat
}

func resolveObject(data []byte) (*domain.Session, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("parsing import document: %w", err)
	}

	hasConfig := isNonNull(fields["config"])
	hasMessageArray := isArray(fields["messages"])

	switch {
	case hasConfig && hasMessageArray:
		return resolveNativeExport(data)
	case hasMessageArray:
		return resolveWirePayload(data)
	}
	return nil, domain.ErrUnknownImportFormat
}

// resolveNativeExport re-reads an exported session as-is; only the top-level
// identifier is replaced so the copy never collides with the original.
func resolveNativeExport(data []byte) (*domain.Session, error) {
	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("parsing session export: %w", err)
	}
	session.ID = uuid.NewString()
	return &session, nil
}

type wirePayload struct {
	Messages            []openai.Message `json:"messages"`
	Model               string           `json:"model"`
	Temperature         *float64         `json:"temperature"`
	TopP                *float64         `json:"top_p"`
	MaxTokens           *int             `json:"max_tokens"`
	MaxCompletionTokens *int             `json:"max_completion_tokens"`
	Tools               any              `json:"tools"`
}

// resolveWirePayload folds a flat chat-completion request body back into the
// nested session shape and lifts the request's sampling fields over the
// default config.
func resolveWirePayload(data []byte) (*domain.Session, error) {
	var payload wirePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parsing chat-completion payload: %w", err)
	}

	config := domain.DefaultConfig()
	if payload.Model != "" {
		config.Model = payload.Model
	}
	if payload.Temperature != nil {
		config.Temperature = *payload.Temperature
	}
	if payload.TopP != nil {
		config.TopP = *payload.TopP
	}
	if payload.MaxTokens != nil {
		config.MaxOutputTokens = *payload.MaxTokens
	} else if payload.MaxCompletionTokens != nil {
		config.MaxOutputTokens = *payload.MaxCompletionTokens
	}
	if payload.Tools != nil {
		if pretty, err := json.MarshalIndent(payload.Tools, "", "  "); err == nil {
			config.ToolsDefinition = string(pretty)
		}
	}

	name := "Imported Session"
	if payload.Model != "" {
		name = "Imported " + payload.Model
	}

	return &domain.Session{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now(),
		Messages:  openai.FromWireMessages(payload.Messages),
		Config:    config,
	}, nil
}

type bareMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// resolveMessageArray is the fallback shape. No tool-call reconstruction is
// attempted; every element becomes a plain message.
func resolveMessageArray(data []byte) (*domain.Session, error) {
	var elements []bareMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, fmt.Errorf("parsing message array: %w", err)
	}

	now := time.Now()
	messages := make([]domain.Message, 0, len(elements))
	for _, element := range elements {
		messages = append(messages, domain.Message{
			ID:        uuid.NewString(),
			Role:      bareRole(element.Role),
			Content:   element.Content,
			Timestamp: now,
		})
	}

	return &domain.Session{
		ID:        uuid.NewString(),
		Name:      "Imported Messages",
		CreatedAt: now,
		Messages:  messages,
		Config:    domain.DefaultConfig(),
	}, nil
}

func bareRole(role string) domain.Role {
	switch role {
	case "assistant":
		return domain.RoleModel
	case "":
		return domain.RoleUser
	default:
		return domain.Role(role)
	}
}

func isNonNull(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

func isArray(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return b == '['
		}
	}
	return false
}
