package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/config"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/model"
)

const keyPrefix = "pubkey:"

// commander is the subset of the go-redis client used by KeyCache.
type commander interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
	Ping(ctx context.Context) *goredis.StatusCmd
	Close() error
}

var (
	_ model.KeyCache = (*KeyCache)(nil)
	_ model.Pinger   = (*KeyCache)(nil)
)

// KeyCache keeps user public keys in Redis with a fixed TTL.
type KeyCache struct {
	client commander
	ttl    time.Duration
}

// New connects to the Redis server described by cfg and verifies it answers.
func New(ctx context.Context, cfg config.Redis) (*KeyCache, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	c := newKeyCache(client, cfg.KeyTTL)
	if err := c.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return c, nil
}

func newKeyCache(client commander, ttl time.Duration) *KeyCache {
	return &KeyCache{client: client, ttl: ttl}
}

// Get returns the cached key. A miss is reported as ok=false without error.
func (c *KeyCache) Get(ctx context.Context, userID uuid.UUID) (string, bool, error) {
	key, err := c.client.Get(ctx, cacheKey(userID)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get cached key: %w", err)
	}
	return key, true, nil
}

func (c *KeyCache) Set(ctx context.Context, userID uuid.UUID, publicKey string) error {
	if err := c.client.Set(ctx, cacheKey(userID), publicKey, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache key: %w", err)
	}
	return nil
}

func (c *KeyCache) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Del(ctx, cacheKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cached key: %w", err)
	}
	return nil
}

func (c *KeyCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *KeyCache) Close() error {
	return c.client.Close()
}

func cacheKey(userID uuid.UUID) string {
	return keyPrefix + userID.String()
}
