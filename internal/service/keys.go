package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/logger"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/model"
)

// Keys serves user public keys, reading through an optional cache.
type Keys struct {
	store  model.UserStore
	cache  model.KeyCache
	logger *logger.Logger
}

// NewKeys creates a key service. cache may be nil.
func NewKeys(store model.UserStore, cache model.KeyCache, logger *logger.Logger) *Keys {
	return &Keys{store: store, cache: cache, logger: logger}
}

// GetPublicKey returns the current public key of userID. Cache failures are
// logged and fall back to the store.
func (s *Keys) GetPublicKey(ctx context.Context, userID uuid.UUID) (string, error) {
	if s.cache != nil {
		key, ok, err := s.cache.Get(ctx, userID)
		if err != nil {
			s.logger.Warn("Keys service: cache lookup failed",
				"user_id", userID.String(),
				"error", err.Error())
		} else if ok {
			return key, nil
		}
	}

	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", model.NewErrUserNotFound()
		}
		s.logger.Error("Keys service: failed to get user",
			"user_id", userID.String(),
			"error", err.Error())
		return "", fmt.Errorf("failed to get user by id: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, user.PublicKey); err != nil {
			s.logger.Warn("Keys service: failed to cache public key",
				"user_id", userID.String(),
				"error", err.Error())
		}
	}

	return user.PublicKey, nil
}
