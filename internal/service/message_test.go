package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/mocks"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/model"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/testutil"
)

func TestMessage_Post(t *testing.T) {
	ctx := context.Background()
	sender, recipient, conv := uuid.New(), uuid.New(), uuid.New()
	fixed := time.Date(2025, 7, 1, 10, 0, 0, 0, time.FixedZone("CEST", 2*3600))

	t.Run("stores message", func(t *testing.T) {
		store := mocks.NewMessageStore(t)
		store.On("Create", mock.Anything, mock.MatchedBy(func(m model.Message) bool {
			return m.SenderID == sender &&
				m.RecipientID == recipient &&
				m.ConversationID == conv &&
				m.Ciphertext == "xyz" &&
				m.Timestamp.Equal(fixed) &&
				m.Timestamp.Location() == time.UTC
		})).Return(func(_ context.Context, m model.Message) (model.Message, error) {
			return m, nil
		}).Once()

		s := NewMessage(store, testutil.MakeNoopLogger())
		s.now = func() time.Time { return fixed }

		msg, err := s.Post(ctx, model.PostMessageParams{
			SenderID:       sender.String(),
			RecipientID:    recipient.String(),
			ConversationID: conv.String(),
			Ciphertext:     "xyz",
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, msg.ID)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		cases := []model.PostMessageParams{
			{SenderID: "A", RecipientID: recipient.String(), ConversationID: conv.String(), Ciphertext: "x"},
			{SenderID: sender.String(), RecipientID: "B", ConversationID: conv.String(), Ciphertext: "x"},
			{SenderID: sender.String(), RecipientID: recipient.String(), ConversationID: "c1", Ciphertext: "x"},
		}
		s := NewMessage(mocks.NewMessageStore(t), testutil.MakeNoopLogger())
		for _, params := range cases {
			_, err := s.Post(ctx, params)
			apiErr := requireAPIError(t, err, http.StatusBadRequest)
			assert.Equal(t, "Bad Request", apiErr.Message)
		}
	})

	t.Run("keeps relay time", func(t *testing.T) {
		sentAt := time.Date(2025, 7, 1, 7, 59, 58, 250000000, time.UTC)
		store := mocks.NewMessageStore(t)
		store.On("Create", mock.Anything, mock.MatchedBy(func(m model.Message) bool {
			return m.Timestamp.Equal(sentAt) && m.Ciphertext == ""
		})).Return(func(_ context.Context, m model.Message) (model.Message, error) {
			return m, nil
		}).Once()

		s := NewMessage(store, testutil.MakeNoopLogger())
		s.now = func() time.Time { return fixed }

		msg, err := s.Post(ctx, model.PostMessageParams{
			SenderID:       sender.String(),
			RecipientID:    recipient.String(),
			ConversationID: conv.String(),
			SentAt:         sentAt,
		})

		require.NoError(t, err)
		assert.Equal(t, sentAt, msg.Timestamp)
	})

	t.Run("store failure", func(t *testing.T) {
		store := mocks.NewMessageStore(t)
		store.On("Create", mock.Anything, mock.Anything).Return(model.Message{}, errors.New("fk violation")).Once()
		s := NewMessage(store, testutil.MakeNoopLogger())

		_, err := s.Post(ctx, model.PostMessageParams{
			SenderID:       sender.String(),
			RecipientID:    recipient.String(),
			ConversationID: conv.String(),
			Ciphertext:     "xyz",
		})

		assert.ErrorContains(t, err, "failed to create message")
	})
}

func TestMessage_GetUnseen(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	after := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	want := []model.Message{{ID: uuid.New()}, {ID: uuid.New()}}

	store := mocks.NewMessageStore(t)
	store.On("GetReceivedAfter", mock.Anything, userID, after).Return(want, nil).Once()
	store.On("GetReceivedAfter", mock.Anything, userID, after.Add(time.Hour)).Return(nil, errors.New("boom")).Once()
	s := NewMessage(store, testutil.MakeNoopLogger())

	got, err := s.GetUnseen(ctx, userID, after)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = s.GetUnseen(ctx, userID, after.Add(time.Hour))
	assert.Error(t, err)
}
