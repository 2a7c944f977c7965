package handler

import (
	"net/http"

	"promptpad/pkg/api/response"
	"promptpad/pkg/domain"
)

type StateProvider interface {
	State() domain.AppState
}

type state struct {
	store  StateProvider
	writer response.JSONResponseWriter
}

func NewState(store StateProvider) *state {
	return &state{store: store}
}

func (h *state) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/state", h.get)
}

func (h *state) get(w http.ResponseWriter, r *http.Request) {
	h.writer.WriteSuccessResponse(w, h.store.State())
}
