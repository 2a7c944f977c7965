package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"promptpad/pkg/api/response"
	"promptpad/pkg/domain"
)

type MessageStore interface {
	AddMessage(sessionID string, msg domain.Message) (domain.Message, error)
	UpdateMessage(sessionID, messageID string, patch domain.MessagePatch) error
	DeleteMessage(sessionID, messageID string) error
	UpdateToolCallResult(sessionID, messageID, toolCallID, result string) error
}

type messages struct {
	store  MessageStore
	writer response.JSONResponseWriter
}

func NewMessages(store MessageStore) *messages {
	return &messages{store: store}
}

func (h *messages) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/sessions/{id}/messages", h.add)
	mux.HandleFunc("PATCH /api/sessions/{id}/messages/{messageID}", h.update)
	mux.HandleFunc("DELETE /api/sessions/{id}/messages/{messageID}", h.delete)
	mux.HandleFunc("PUT /api/sessions/{id}/messages/{messageID}/tool-calls/{toolCallID}/result", h.setToolResult)
}

func (h *messages) add(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Role      domain.Role       `json:"role"`
		Content   string            `json:"content"`
		ToolCalls []domain.ToolCall `json:"toolCalls"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Role == "" {
		body.Role = domain.RoleUser
	}

	msg, err := h.store.AddMessage(r.PathValue("id"), domain.Message{
		Role:      body.Role,
		Content:   body.Content,
		ToolCalls: body.ToolCalls,
	})
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.writer.WriteCreatedResponse(w, msg)
}

func (h *messages) update(w http.ResponseWriter, r *http.Request) {
	var patch domain.MessagePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.store.UpdateMessage(r.PathValue("id"), r.PathValue("messageID"), patch); err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.writer.WriteSuccessResponse(w, struct{}{})
}

func (h *messages) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteMessage(r.PathValue("id"), r.PathValue("messageID")); err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.writer.WriteSuccessResponse(w, struct{}{})
}

func (h *messages) setToolResult(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Result string `json:"result"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.store.UpdateToolCallResult(r.PathValue("id"), r.PathValue("messageID"), r.PathValue("toolCallID"), body.Result)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.writer.WriteSuccessResponse(w, struct{}{})
}

func (h *messages) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		h.writer.WriteErrorResponse(w, http.StatusNotFound, "not found")
		return
	}
	h.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
}
