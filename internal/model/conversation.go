package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ConversationStore defines persistence operations for pairwise conversations.
type ConversationStore interface {
	GetByParticipants(ctx context.Context, user1ID, user2ID uuid.UUID) (Conversation, error)
	Create(ctx context.Context, conversation Conversation) (Conversation, error)
}

// Conversation is shared by exactly two users. User1ID is always the
// lexicographically smaller id.
type Conversation struct {
	ID        uuid.UUID
	User1ID   uuid.UUID
	User2ID   uuid.UUID
	CreatedAt time.Time
}

// ConversationResult is returned when a conversation is opened.
type ConversationResult struct {
	Conversation   Conversation
	Created        bool
	User1PublicKey string
	User2PublicKey string
}
