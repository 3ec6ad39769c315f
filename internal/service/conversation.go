package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/logger"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/model"
)

// Conversation opens pairwise conversations.
type Conversation struct {
	store     model.ConversationStore
	userStore model.UserStore
	logger    *logger.Logger
}

// NewConversation creates a conversation service.
func NewConversation(store model.ConversationStore, userStore model.UserStore, logger *logger.Logger) *Conversation {
	return &Conversation{store: store, userStore: userStore, logger: logger}
}

// Open returns the conversation between user1ID and user2ID, creating it if
// needed. The requester must be one of the participants. Participant ids are
// stored in sorted order so that either argument order finds the same row.
func (s *Conversation) Open(ctx context.Context, requesterID, user1ID, user2ID uuid.UUID) (model.ConversationResult, error) {
	if user1ID == uuid.Nil || user2ID == uuid.Nil {
		return model.ConversationResult{}, model.NewErrInvalidInput()
	}
	if requesterID != user1ID && requesterID != user2ID {
		s.logger.Info("Conversation service: requester is not a participant",
			"requester_id", requesterID.String())
		return model.ConversationResult{}, model.NewErrForbidden()
	}

	first, second := sortPair(user1ID, user2ID)

	existing, err := s.store.GetByParticipants(ctx, first, second)
	if err == nil {
		return model.ConversationResult{Conversation: existing}, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		s.logger.Error("Conversation service: failed to get conversation",
			"user1_id", first.String(),
			"user2_id", second.String(),
			"error", err.Error())
		return model.ConversationResult{}, fmt.Errorf("failed to get conversation: %w", err)
	}

	user1, err := s.participant(ctx, first)
	if err != nil {
		return model.ConversationResult{}, err
	}
	user2, err := s.participant(ctx, second)
	if err != nil {
		return model.ConversationResult{}, err
	}

	conversation, err := s.store.Create(ctx, model.Conversation{
		ID:      uuid.New(),
		User1ID: first,
		User2ID: second,
	})
	if err != nil {
		if errors.Is(err, model.ErrAlreadyExists) {
			// Created concurrently by the other participant.
			existing, getErr := s.store.GetByParticipants(ctx, first, second)
			if getErr != nil {
				return model.ConversationResult{}, fmt.Errorf("failed to get conversation: %w", getErr)
			}
			return model.ConversationResult{Conversation: existing}, nil
		}
		s.logger.Error("Conversation service: failed to create conversation",
			"user1_id", first.String(),
			"user2_id", second.String(),
			"error", err.Error())
		return model.ConversationResult{}, fmt.Errorf("failed to create conversation: %w", err)
	}

	s.logger.Info("Conversation service: conversation created",
		"conversation_id", conversation.ID.String())

	return model.ConversationResult{
		Conversation:   conversation,
		Created:        true,
		User1PublicKey: user1.PublicKey,
		User2PublicKey: user2.PublicKey,
	}, nil
}

func (s *Conversation) participant(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.NewErrUserNotFound()
		}
		s.logger.Error("Conversation service: failed to get participant",
			"user_id", id.String(),
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get participant: %w", err)
	}
	return user, nil
}

func sortPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if b.String() < a.String() {
		return b, a
	}
	return a, b
}
