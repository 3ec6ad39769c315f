package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/model"
)

var _ model.MessageStore = (*MessageRepository)(nil)

type MessageRepository struct {
	db *Connection
}

func NewMessageRepository(db *Connection) *MessageRepository {
	return &MessageRepository{
		db: db,
	}
}

func (r *MessageRepository) Create(ctx context.Context, message model.Message) (model.Message, error) {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now().UTC()
	}

	query := `INSERT INTO messages (id, sender_id, recipient_id, conversation_id, ciphertext, sent_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, sender_id, recipient_id, conversation_id, ciphertext, sent_at`

	var m model.Message
	err := r.db.QueryRow(ctx, query,
		message.ID, message.SenderID, message.RecipientID, message.ConversationID,
		message.Ciphertext, message.Timestamp,
	).Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.ConversationID, &m.Ciphertext, &m.Timestamp)
	if err != nil {
		return model.Message{}, fmt.Errorf("failed to create message: %w", translateError(err))
	}

	return m, nil
}

// GetReceivedAfter lists messages addressed to recipientID sent strictly
// after the given time, oldest first.
func (r *MessageRepository) GetReceivedAfter(ctx context.Context, recipientID uuid.UUID, after time.Time) ([]model.Message, error) {
	query := `SELECT id, sender_id, recipient_id, conversation_id, ciphertext, sent_at
			  FROM messages
			  WHERE recipient_id = $1 AND sent_at > $2
			  ORDER BY sent_at, id`

	rows, err := r.db.Query(ctx, query, recipientID, after)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}
	defer rows.Close()

	messages := make([]model.Message, 0)
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.ConversationID, &m.Ciphertext, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}

	return messages, nil
}
