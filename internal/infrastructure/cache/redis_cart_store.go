package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/storefront/backend/internal/domain/cart"
)

const cartKeyPrefix = "cart:"

// RedisCartStore implements cart.Store using Redis. Carts are stored
// as JSON blobs keyed by (store, session) and expire after the TTL,
// which every save refreshes.
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCartStore creates a cart store on an existing Redis client
func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{
		client: client,
		ttl:    ttl,
	}
}

// Get loads a cart, returning an empty cart if none exists
func (s *RedisCartStore) Get(ctx context.Context, tenantID uuid.UUID, sessionID string) (*cart.Cart, error) {
	data, err := s.client.Get(ctx, cartKey(tenantID, sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return cart.New(tenantID, sessionID), nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		// A corrupt blob is unrecoverable; start the session over
		return cart.New(tenantID, sessionID), nil
	}
	return &c, nil
}

// Save writes the cart back and refreshes its TTL
func (s *RedisCartStore) Save(ctx context.Context, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	if err := s.client.Set(ctx, cartKey(c.TenantID, c.SessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Delete drops the cart
func (s *RedisCartStore) Delete(ctx context.Context, tenantID uuid.UUID, sessionID string) error {
	if err := s.client.Del(ctx, cartKey(tenantID, sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

func cartKey(tenantID uuid.UUID, sessionID string) string {
	return cartKeyPrefix + tenantID.String() + ":" + sessionID
}

var _ cart.Store = (*RedisCartStore)(nil)
