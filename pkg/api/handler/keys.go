package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"promptpad/pkg/api/response"
	"promptpad/pkg/domain"
)

type KeyStore interface {
	AddAPIKey(name, key, baseURL string) domain.APIKeyConfig
	RemoveAPIKey(id string)
	SelectAPIKey(id string) error
}

type keys struct {
	store  KeyStore
	writer response.JSONResponseWriter
}

func NewKeys(store KeyStore) *keys {
	return &keys{store: store}
}

func (h *keys) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/keys", h.add)
	mux.HandleFunc("DELETE /api/keys/{id}", h.remove)
	mux.HandleFunc("POST /api/keys/{id}/select", h.selectKey)
}

func (h *keys) add(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name    string `json:"name"`
		Key     string `json:"key"`
		BaseURL string `json:"baseUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Key == "" {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "key is required")
		return
	}

	h.writer.WriteCreatedResponse(w, h.store.AddAPIKey(body.Name, body.Key, body.BaseURL))
}

func (h *keys) remove(w http.ResponseWriter, r *http.Request) {
	h.store.RemoveAPIKey(r.PathValue("id"))
	h.writer.WriteSuccessResponse(w, struct{}{})
}

func (h *keys) selectKey(w http.ResponseWriter, r *http.Request) {
	if err := h.store.SelectAPIKey(r.PathValue("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.writer.WriteErrorResponse(w, http.StatusNotFound, "key not found")
			return
		}
		h.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writer.WriteSuccessResponse(w, struct{}{})
}
