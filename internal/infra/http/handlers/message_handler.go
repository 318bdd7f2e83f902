package handlers

import (
	"net/http"

	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type MessageHandler struct {
	listMessages *usecase.ListMessagesUseCase
}

func NewMessageHandler(uc *usecase.ListMessagesUseCase) *MessageHandler {
	return &MessageHandler{listMessages: uc}
}

// List is mounted behind the management-only session gate.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.listMessages.Execute(r.Context())
	if err != nil {
		writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"messages": msgs})
}
