package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"promptpad/pkg/domain"
	"promptpad/pkg/logger"
)

const defaultBaseURL = "https://api.openai.com/v1"

type client struct {
	hc *http.Client
}

// NewClient creates a stateless chat-completions client. The key and base
// URL travel with each call because every stored API key may point at a
// different OpenAI-compatible endpoint.
func NewClient() *client {
	return &client{hc: &http.Client{}}
}

// CreateChatCompletion issues one non-streaming completion for the session.
// It never mutates the session; appending the returned result is the
// caller's job.
func (c *client) CreateChatCompletion(ctx context.Context, key domain.APIKeyConfig, session domain.Session) (*domain.GenerateResult, error) {
	if key.Key == "" {
		return nil, fmt.Errorf("API key is empty")
	}

	request := &chatCompletionsRequest{
		Model:       session.Config.Model,
		Messages:    ToWireMessages(session.Messages),
		Temperature: session.Config.Temperature,
		TopP:        session.Config.TopP,
		Tools:       parseToolsDefinition(session.Config.ToolsDefinition),
	}

	response, err := c.send(ctx, resolveBaseURL(key.BaseURL), key.Key, request)
	if err != nil {
		return nil, err
	}

	if len(response.Choices) == 0 || response.Choices[0].Message == nil {
		return nil, fmt.Errorf("no message returned from API")
	}

	message := response.Choices[0].Message
	result := &domain.GenerateResult{}
	if message.Content != nil {
		result.Text = *message.Content
	}
	for _, tc := range message.ToolCalls {
		result.ToolCalls = append(result.ToolCalls, domain.ToolCall{
			ID:   tc.ID,
			Name: tc.Function.Name,
			Args: decodeArguments(tc.Function.Arguments),
		})
	}
	return result, nil
}

// decodeArguments keeps malformed argument payloads inspectable instead of
// dropping them; the response came from a live call and may matter.
func decodeArguments(arguments string) map[string]any {
	args := map[string]any{}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return map[string]any{"raw": arguments}
	}
	return args
}

// parseToolsDefinition reads the session's raw tools text. A parse failure
// means the request simply goes out without tools; the raw text stays
// untouched in the config.
func parseToolsDefinition(text string) []json.RawMessage {
	var tools []json.RawMessage
	if err := json.Unmarshal([]byte(text), &tools); err != nil {
		slog.Warn("invalid tools definition, sending request without tools", logger.Err(err))
		return nil
	}
	return tools
}

func resolveBaseURL(override string) string {
	if override == "" {
		return defaultBaseURL
	}
	return strings.TrimRight(override, "/")
}

func (c *client) send(ctx context.Context, baseURL, token string, request *chatCompletionsRequest) (*chatCompletionsResponse, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errorFromResponse(resp)
	}

	var chatResponse chatCompletionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResponse); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &chatResponse, nil
}

// errorFromResponse prefers the human-readable message from the error body,
// falling back to the status text.
func errorFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var errResponse apiErrorResponse
	if err := json.Unmarshal(body, &errResponse); err == nil && errResponse.Error != nil && errResponse.Error.Message != "" {
		return fmt.Errorf("API error: %s", errResponse.Error.Message)
	}
	return fmt.Errorf("API error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}
