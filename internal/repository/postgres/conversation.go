package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/model"
)

var _ model.ConversationStore = (*ConversationRepository)(nil)

type ConversationRepository struct {
	db *Connection
}

func NewConversationRepository(db *Connection) *ConversationRepository {
	return &ConversationRepository{
		db: db,
	}
}

// GetByParticipants finds the conversation between two users in either order.
func (r *ConversationRepository) GetByParticipants(ctx context.Context, user1ID, user2ID uuid.UUID) (model.Conversation, error) {
	query := `SELECT id, user1_id, user2_id, created_at FROM conversations
			  WHERE (user1_id = $1 AND user2_id = $2) OR (user1_id = $2 AND user2_id = $1)
			  LIMIT 1`

	var c model.Conversation
	err := r.db.QueryRow(ctx, query, user1ID, user2ID).Scan(&c.ID, &c.User1ID, &c.User2ID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Conversation{}, model.ErrNotFound
		}
		return model.Conversation{}, fmt.Errorf("failed to get conversation: %w", err)
	}

	return c, nil
}

func (r *ConversationRepository) Create(ctx context.Context, conversation model.Conversation) (model.Conversation, error) {
	if conversation.ID == uuid.Nil {
		conversation.ID = uuid.New()
	}

	query := `INSERT INTO conversations (id, user1_id, user2_id)
			  VALUES ($1, $2, $3)
			  RETURNING id, user1_id, user2_id, created_at`

	var c model.Conversation
	err := r.db.QueryRow(ctx, query, conversation.ID, conversation.User1ID, conversation.User2ID).
		Scan(&c.ID, &c.User1ID, &c.User2ID, &c.CreatedAt)
	if err != nil {
		return model.Conversation{}, fmt.Errorf("failed to create conversation: %w", translateError(err))
	}

	return c, nil
}
