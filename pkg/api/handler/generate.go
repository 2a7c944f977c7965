package handler

import (
	"context"
	"errors"
	"net/http"

	"promptpad/pkg/api/response"
	"promptpad/pkg/domain"
)

type Generator interface {
	Generate(ctx context.Context, sessionID string) (domain.Message, error)
}

type generate struct {
	generator Generator
	writer    response.JSONResponseWriter
}

func NewGenerate(generator Generator) *generate {
	return &generate{generator: generator}
}

func (h *generate) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/sessions/{id}/generate", h.run)
}

func (h *generate) run(w http.ResponseWriter, r *http.Request) {
	msg, err := h.generator.Generate(r.Context(), r.PathValue("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.writer.WriteErrorResponse(w, http.StatusNotFound, "session not found")
		case errors.Is(err, domain.ErrNoAPIKey):
			h.writer.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		default:
			h.writer.WriteErrorResponse(w, http.StatusBadGateway, err.Error())
		}
		return
	}
	h.writer.WriteCreatedResponse(w, msg)
}
