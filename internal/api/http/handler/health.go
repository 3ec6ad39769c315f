package handler

import (
	"net/http"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/api/http/response"
)

// OnlineCounter reports the number of connected users.
type OnlineCounter interface {
	Count() int
}

// ConversationCounter reports the number of conversations with a joined member.
type ConversationCounter interface {
	Conversations() int
}

// Health reports liveness and realtime occupancy.
type Health struct {
	online        OnlineCounter
	conversations ConversationCounter
}

// NewHealth creates a new Health handler.
func NewHealth(online OnlineCounter, conversations ConversationCounter) *Health {
	return &Health{online: online, conversations: conversations}
}

func (h *Health) Get(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Online:        h.online.Count(),
		Conversations: h.conversations.Conversations(),
	})
}
