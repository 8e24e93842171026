package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"maritime-ai-server/internal/domain"
)

// ChatHandler handles assistant chat requests.
type ChatHandler struct {
	chat   domain.ChatService
	logger domain.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chat domain.ChatService, logger domain.Logger) *ChatHandler {
	return &ChatHandler{
		chat:   chat,
		logger: logger,
	}
}

// Chat answers a sailor message. The endpoint always responds 200: an
// unreadable body is treated as an empty message and service failures
// degrade into the reply text.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req domain.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("Chat request body unreadable, treating as empty", "error", err)
		req = domain.ChatRequest{}
	}

	reply, err := h.chat.Reply(r.Context(), req, clientIP(r))
	if err != nil {
		h.logger.Error("Chat reply failed", err, "engine", req.Engine)
		reply = fmt.Sprintf("Error: %v", err)
	}

	writeJSON(w, http.StatusOK, domain.ChatReply{Reply: reply})
}
