package handler

import (
	"encoding/json"
	"net/http"

	"promptpad/pkg/api/response"
)

type UIStore interface {
	ToggleSidebar()
	ToggleSettings()
	SetTheme(theme string)
}

type ui struct {
	store  UIStore
	writer response.JSONResponseWriter
}

func NewUI(store UIStore) *ui {
	return &ui{store: store}
}

func (h *ui) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/ui/sidebar/toggle", h.toggleSidebar)
	mux.HandleFunc("POST /api/ui/settings/toggle", h.toggleSettings)
	mux.HandleFunc("PUT /api/ui/theme", h.setTheme)
}

func (h *ui) toggleSidebar(w http.ResponseWriter, r *http.Request) {
	h.store.ToggleSidebar()
	h.writer.WriteSuccessResponse(w, struct{}{})
}

func (h *ui) toggleSettings(w http.ResponseWriter, r *http.Request) {
	h.store.ToggleSettings()
	h.writer.WriteSuccessResponse(w, struct{}{})
}

func (h *ui) setTheme(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Theme != "dark" && body.Theme != "light" {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "theme must be dark or light")
		return
	}

	h.store.SetTheme(body.Theme)
	h.writer.WriteSuccessResponse(w, struct{}{})
}
