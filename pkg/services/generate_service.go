package services

import (
	"context"
	"log/slog"

	"promptpad/pkg/domain"
	"promptpad/pkg/logger"
)

type SessionStore interface {
	Session(id string) (domain.Session, bool)
	SelectedAPIKey() (domain.APIKeyConfig, bool)
	AddMessage(sessionID string, msg domain.Message) (domain.Message, error)
}

type CompletionsClient interface {
	CreateChatCompletion(ctx context.Context, key domain.APIKeyConfig, session domain.Session) (*domain.GenerateResult, error)
}

type generateService struct {
	store  SessionStore
	client CompletionsClient
}

func NewGenerateService(store SessionStore, client CompletionsClient) *generateService {
	return &generateService{
		store:  store,
		client: client,
	}
}

// Generate runs one completion for the session using the selected API key
// and appends the outcome: the assistant message on success, an error-flagged
// placeholder on failure. The error is returned either way so the caller can
// surface it.
func (g *generateService) Generate(ctx context.Context, sessionID string) (domain.Message, error) {
	session, ok := g.store.Session(sessionID)
	if !ok {
		return domain.Message{}, domain.ErrNotFound
	}
	key, ok := g.store.SelectedAPIKey()
	if !ok {
		return domain.Message{}, domain.ErrNoAPIKey
	}

	result, err := g.client.CreateChatCompletion(ctx, key, session)
	if err != nil {
		slog.Error("chat completion failed", "sessionID", sessionID, logger.Err(err))
		placeholder := domain.Message{
			Role:    domain.RoleModel,
			Content: err.Error(),
			IsError: true,
		}
		if _, addErr := g.store.AddMessage(sessionID, placeholder); addErr != nil {
			slog.Error("appending error placeholder", "sessionID", sessionID, logger.Err(addErr))
		}
		return domain.Message{}, err
	}

	return g.store.AddMessage(sessionID, domain.Message{
		Role:      domain.RoleModel,
		Content:   result.Text,
		ToolCalls: result.ToolCalls,
	})
}
