package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/api/http/response"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/logger"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/model"
)

// ConversationService opens pairwise conversations.
type ConversationService interface {
	Open(ctx context.Context, requesterID, user1ID, user2ID uuid.UUID) (model.ConversationResult, error)
}

// Conversation handles the /conversations endpoints.
type Conversation struct {
	service        ConversationService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewConversation creates a new Conversation handler.
func NewConversation(service ConversationService, contextManager model.ContextManager, logger *logger.Logger) *Conversation {
	return &Conversation{service: service, contextManager: contextManager, logger: logger}
}

// Open returns the existing conversation between two users or creates one.
func (h *Conversation) Open(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		response.Error(w, model.NewErrUnauthorized())
		return
	}

	var req openConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, model.NewErrInvalidInput())
		return
	}
	user1ID, err1 := uuid.Parse(req.User1ID)
	user2ID, err2 := uuid.Parse(req.User2ID)
	if err1 != nil || err2 != nil {
		response.Error(w, model.NewErrInvalidInput())
		return
	}

	res, err := h.service.Open(r.Context(), requesterID, user1ID, user2ID)
	if err != nil {
		h.logger.Info("Conversation handler: open failed",
			"requester_id", requesterID.String(),
			"error", err.Error())
		response.Error(w, err)
		return
	}

	if !res.Created {
		response.JSON(w, http.StatusOK, openConversationResponse{
			Message:      "Conversation already exists",
			Conversation: toConversationDTO(res.Conversation),
		})
		return
	}

	response.JSON(w, http.StatusCreated, openConversationResponse{
		Message:        "Conversation created",
		Conversation:   toConversationDTO(res.Conversation),
		User1PublicKey: res.User1PublicKey,
		User2PublicKey: res.User2PublicKey,
	})
}
