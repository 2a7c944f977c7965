package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"promptpad/pkg/api/response"
	"promptpad/pkg/domain"
	"promptpad/pkg/toolschema"
)

type ToolsStore interface {
	Session(id string) (domain.Session, bool)
	UpdateSessionConfig(id string, patch domain.ConfigPatch) error
}

type tools struct {
	store  ToolsStore
	writer response.JSONResponseWriter
}

func NewTools(store ToolsStore) *tools {
	return &tools{store: store}
}

func (h *tools) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/sessions/{id}/tools", h.get)
	mux.HandleFunc("PUT /api/sessions/{id}/tools", h.put)
	mux.HandleFunc("GET /api/tools/sample", h.sample)
}

// sample serves the starter definition the raw tools editor offers.
func (h *tools) sample(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(domain.SampleToolsDefinition))
}

// get returns the visual form of the session's tools. An unparsable
// toolsDefinition yields an empty list; the raw text in the config stays
// untouched so the user's edit survives.
func (h *tools) get(w http.ResponseWriter, r *http.Request) {
	session, ok := h.store.Session(r.PathValue("id"))
	if !ok {
		h.writer.WriteErrorResponse(w, http.StatusNotFound, "session not found")
		return
	}

	visual := toolschema.Parse(session.Config.ToolsDefinition)
	if visual == nil {
		visual = []toolschema.Tool{}
	}
	h.writer.WriteSuccessResponse(w, visual)
}

func (h *tools) put(w http.ResponseWriter, r *http.Request) {
	var visual []toolschema.Tool
	if err := json.NewDecoder(r.Body).Decode(&visual); err != nil {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	text, err := toolschema.Serialize(visual)
	if err != nil {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.UpdateSessionConfig(r.PathValue("id"), domain.ConfigPatch{ToolsDefinition: &text}); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.writer.WriteErrorResponse(w, http.StatusNotFound, "session not found")
			return
		}
		h.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writer.WriteSuccessResponse(w, struct{}{})
}
