package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"promptpad/pkg/api/response"
	"promptpad/pkg/domain"
)

type SessionStore interface {
	Session(id string) (domain.Session, bool)
	CreateSession() domain.Session
	DeleteSession(id string)
	SwitchSession(id string) error
	UpdateSessionName(id, name string) error
	UpdateSessionConfig(id string, patch domain.ConfigPatch) error
}

type sessions struct {
	store  SessionStore
	writer response.JSONResponseWriter
}

func NewSessions(store SessionStore) *sessions {
	return &sessions{store: store}
}

func (h *sessions) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/sessions", h.create)
	mux.HandleFunc("DELETE /api/sessions/{id}", h.delete)
	mux.HandleFunc("POST /api/sessions/{id}/select", h.selectSession)
	mux.HandleFunc("PATCH /api/sessions/{id}", h.rename)
	mux.HandleFunc("PATCH /api/sessions/{id}/config", h.updateConfig)
	mux.HandleFunc("GET /api/sessions/{id}/export", h.export)
}

func (h *sessions) create(w http.ResponseWriter, r *http.Request) {
	h.writer.WriteCreatedResponse(w, h.store.CreateSession())
}

func (h *sessions) delete(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteSession(r.PathValue("id"))
	h.writer.WriteSuccessResponse(w, struct{}{})
}

func (h *sessions) selectSession(w http.ResponseWriter, r *http.Request) {
	if err := h.store.SwitchSession(r.PathValue("id")); err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.writer.WriteSuccessResponse(w, struct{}{})
}

func (h *sessions) rename(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.store.UpdateSessionName(r.PathValue("id"), body.Name); err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.writer.WriteSuccessResponse(w, struct{}{})
}

func (h *sessions) updateConfig(w http.ResponseWriter, r *http.Request) {
	var patch domain.ConfigPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.store.UpdateSessionConfig(r.PathValue("id"), patch); err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.writer.WriteSuccessResponse(w, struct{}{})
}

// export writes the session verbatim; the document re-imports as the native
// shape.
func (h *sessions) export(w http.ResponseWriter, r *http.Request) {
	session, ok := h.store.Session(r.PathValue("id"))
	if !ok {
		h.writer.WriteErrorResponse(w, http.StatusNotFound, "session not found")
		return
	}
	h.writer.WriteSuccessResponse(w, session)
}

func (h *sessions) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		h.writer.WriteErrorResponse(w, http.StatusNotFound, "session not found")
		return
	}
	h.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
}
