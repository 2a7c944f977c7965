package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrNoAPIKey            = errors.New("no API key selected")
	ErrUnknownImportFormat = errors.New("unknown JSON format: expected a session export, a chat-completion payload, or a message array")
)
