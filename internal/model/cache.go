package model

import (
	"context"

	"github.com/google/uuid"
)

// KeyCache caches user public keys. Get reports a miss with ok=false.
type KeyCache interface {
	Get(ctx context.Context, userID uuid.UUID) (publicKey string, ok bool, err error)
	Set(ctx context.Context, userID uuid.UUID, publicKey string) error
	Delete(ctx context.Context, userID uuid.UUID) error
}
