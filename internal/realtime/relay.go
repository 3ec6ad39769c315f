package realtime

import (
	"time"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/logger"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/model"
)

// Enqueuer accepts messages for background persistence without blocking.
type Enqueuer interface {
	Enqueue(params model.PostMessageParams) bool
}

// Relay forwards messages to online recipients and hands every message to
// the persistence queue, whatever the delivery outcome.
type Relay struct {
	presence *Presence
	store    Enqueuer
	logger   *logger.Logger
	now      func() time.Time
}

// NewRelay creates a relay over the presence registry.
func NewRelay(presence *Presence, store Enqueuer, logger *logger.Logger) *Relay {
	return &Relay{
		presence: presence,
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
}

// RelayResult describes what happened to one message.
type RelayResult struct {
	Delivered bool
	Queued    bool
}

// Relay delivers ciphertext from senderID to recipientID when the recipient
// is online, then queues it for storage. Neither step is retried.
func (r *Relay) Relay(senderID, recipientID, conversationID, ciphertext string) RelayResult {
	var res RelayResult
	sentAt := r.now().UTC().Truncate(time.Millisecond)

	if conn, ok := r.presence.Lookup(recipientID); ok {
		err := conn.Send(DeliveryFrame{
			Type:           FrameTypeMessage,
			ConversationID: conversationID,
			From:           senderID,
			Ciphertext:     ciphertext,
			Timestamp:      FormatTimestamp(sentAt),
		})
		if err != nil {
			r.logger.Warn("Relay: failed to deliver message",
				"sender_id", senderID,
				"recipient_id", recipientID,
				"conversation_id", conversationID,
				"error", err.Error())
		} else {
			res.Delivered = true
		}
	}

	res.Queued = r.store.Enqueue(model.PostMessageParams{
		SenderID:       senderID,
		RecipientID:    recipientID,
		ConversationID: conversationID,
		Ciphertext:     ciphertext,
		SentAt:         sentAt,
	})

	r.logger.Debug("Relay: message processed",
		"sender_id", senderID,
		"recipient_id", recipientID,
		"conversation_id", conversationID,
		"delivered", res.Delivered,
		"queued", res.Queued)

	return res
}
