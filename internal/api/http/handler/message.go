package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/api/http/response"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/logger"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/model"
)

// MessageService stores and lists messages.
type MessageService interface {
	Post(ctx context.Context, params model.PostMessageParams) (model.Message, error)
	GetUnseen(ctx context.Context, userID uuid.UUID, after time.Time) ([]model.Message, error)
}

// Message handles the /message endpoints.
type Message struct {
	service        MessageService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewMessage creates a new Message handler.
func NewMessage(service MessageService, contextManager model.ContextManager, logger *logger.Logger) *Message {
	return &Message{service: service, contextManager: contextManager, logger: logger}
}

// Post stores a message sent by the caller.
func (h *Message) Post(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		response.Error(w, model.NewErrUnauthorized())
		return
	}

	var req postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, model.NewErrBadRequest())
		return
	}
	if req.SenderID != callerID.String() {
		response.Error(w, model.NewErrForbidden())
		return
	}

	msg, err := h.service.Post(r.Context(), model.PostMessageParams{
		SenderID:       req.SenderID,
		RecipientID:    req.ReceiverID,
		ConversationID: req.ConvID,
		Ciphertext:     req.CipherText,
	})
	if err != nil {
		h.logger.Info("Message handler: post failed",
			"sender_id", req.SenderID,
			"error", err.Error())
		response.Error(w, err)
		return
	}

	response.JSON(w, http.StatusOK, postMessageResponse{Message: toMessageDTO(msg)})
}

// Unseen lists messages received by the caller after the given timestamp.
func (h *Message) Unseen(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		response.Error(w, model.NewErrUnauthorized())
		return
	}

	query := r.URL.Query()
	userID, err := uuid.Parse(query.Get("userId"))
	if err != nil {
		response.Error(w, model.NewErrBadRequest())
		return
	}
	after, err := time.Parse(time.RFC3339Nano, query.Get("timestamp"))
	if err != nil {
		response.Error(w, model.NewErrBadRequest())
		return
	}
	if userID != callerID {
		response.Error(w, model.NewErrForbidden())
		return
	}

	messages, err := h.service.GetUnseen(r.Context(), userID, after)
	if err != nil {
		response.Error(w, err)
		return
	}

	out := unseenResponse{Messages: make([]messageDTO, 0, len(messages))}
	for _, m := range messages {
		out.Messages = append(out.Messages, toMessageDTO(m))
	}
	response.JSON(w, http.StatusOK, out)
}
