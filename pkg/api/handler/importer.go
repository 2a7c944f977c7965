package handler

import (
	"io"
	"net/http"

	"promptpad/pkg/api/response"
	"promptpad/pkg/domain"
	"promptpad/pkg/importer"
)

const maxImportSize = 10 << 20

type SessionImporter interface {
	ImportSession(session domain.Session)
}

type importHandler struct {
	store  SessionImporter
	writer response.JSONResponseWriter
}

func NewImport(store SessionImporter) *importHandler {
	return &importHandler{store: store}
}

func (h *importHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/import", h.importDocument)
}

// importDocument resolves an uploaded JSON document into a session and makes
// it the active one. A document matching no known shape is rejected whole;
// nothing is created.
func (h *importHandler) importDocument(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "reading request body failed")
		return
	}

	session, err := importer.Resolve(data)
	if err != nil {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	h.store.ImportSession(*session)
	h.writer.WriteCreatedResponse(w, session)
}
