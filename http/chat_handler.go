package http

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"tds-assistant/domain"
	"tds-assistant/service"
)

type chatRequest struct {
	Text string `json:"text"`
}

type chatResponse struct {
	Reply domain.ConversationTurn   `json:"reply"`
	Turns []domain.ConversationTurn `json:"turns"`
}

type ChatHandler struct {
	session *service.ChatSession
	logger  *zap.Logger
}

func NewChatHandler(session *service.ChatSession, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{session: session, logger: logger}
}

// Messages serves /chat/messages: GET lists, POST sends, DELETE clears.
func (h *ChatHandler) Messages(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, h.logger, http.StatusOK, h.session.Turns())
	case http.MethodPost:
		h.send(w, r)
	case http.MethodDelete:
		h.session.Clear()
		writeJSON(w, h.logger, http.StatusOK, h.session.Turns())
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ChatHandler) send(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	reply, err := h.session.Send(r.Context(), req.Text)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, chatResponse{
		Reply: reply,
		Turns: h.session.Turns(),
	})
}

// Message serves DELETE /chat/messages/{id}.
func (h *ChatHandler) Message(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/chat/messages/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "invalid message id", http.StatusBadRequest)
		return
	}

	if err := h.session.Delete(id); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
