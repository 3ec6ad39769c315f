package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/logger"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/model"
)

// Message stores and lists encrypted messages.
type Message struct {
	store  model.MessageStore
	logger *logger.Logger
	now    func() time.Time
}

// NewMessage creates a message service.
func NewMessage(store model.MessageStore, logger *logger.Logger) *Message {
	return &Message{store: store, logger: logger, now: time.Now}
}

// Post validates identifiers and stores one ciphertext.
func (s *Message) Post(ctx context.Context, params model.PostMessageParams) (model.Message, error) {
	senderID, err := uuid.Parse(params.SenderID)
	if err != nil {
		return model.Message{}, model.NewErrBadRequest()
	}
	recipientID, err := uuid.Parse(params.RecipientID)
	if err != nil {
		return model.Message{}, model.NewErrBadRequest()
	}
	conversationID, err := uuid.Parse(params.ConversationID)
	if err != nil {
		return model.Message{}, model.NewErrBadRequest()
	}

	sentAt := params.SentAt
	if sentAt.IsZero() {
		sentAt = s.now()
	}

	message, err := s.store.Create(ctx, model.Message{
		ID:             uuid.New(),
		SenderID:       senderID,
		RecipientID:    recipientID,
		ConversationID: conversationID,
		Ciphertext:     params.Ciphertext,
		Timestamp:      sentAt.UTC(),
	})
	if err != nil {
		s.logger.Error("Message service: failed to store message",
			"sender_id", params.SenderID,
			"conversation_id", params.ConversationID,
			"error", err.Error())
		return model.Message{}, fmt.Errorf("failed to create message: %w", err)
	}

	s.logger.Debug("Message service: message stored",
		"message_id", message.ID.String(),
		"conversation_id", params.ConversationID)

	return message, nil
}

// GetUnseen returns messages received by userID strictly after the given
// time, oldest first.
func (s *Message) GetUnseen(ctx context.Context, userID uuid.UUID, after time.Time) ([]model.Message, error) {
	messages, err := s.store.GetReceivedAfter(ctx, userID, after)
	if err != nil {
		s.logger.Error("Message service: failed to get unseen messages",
			"user_id", userID.String(),
			"error", err.Error())
		return nil, fmt.Errorf("failed to get unseen messages: %w", err)
	}

	return messages, nil
}
