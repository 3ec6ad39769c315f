package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MessageStore defines persistence operations for encrypted messages.
type MessageStore interface {
	Create(ctx context.Context, message Message) (Message, error)
	GetReceivedAfter(ctx context.Context, recipientID uuid.UUID, after time.Time) ([]Message, error)
}

// Message is a stored ciphertext. The server never inspects Ciphertext.
type Message struct {
	ID             uuid.UUID
	SenderID       uuid.UUID
	RecipientID    uuid.UUID
	ConversationID uuid.UUID
	Ciphertext     string
	Timestamp      time.Time
}

// PostMessageParams carries unvalidated identifiers as received from clients.
// A zero SentAt is stamped with the time of storage.
type PostMessageParams struct {
	SenderID       string
	RecipientID    string
	ConversationID string
	Ciphertext     string
	SentAt         time.Time
}
