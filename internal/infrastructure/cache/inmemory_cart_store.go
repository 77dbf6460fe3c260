package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
)

type cartEntry struct {
	cart      *cart.Cart
	expiresAt time.Time
}

// InMemoryCartStore implements cart.Store using an in-memory map.
// Suitable for single-instance deployments and testing.
type InMemoryCartStore struct {
	mu      sync.RWMutex
	entries map[string]cartEntry
	ttl     time.Duration
}

// NewInMemoryCartStore creates a new in-memory cart store
func NewInMemoryCartStore(ttl time.Duration) *InMemoryCartStore {
	return &InMemoryCartStore{
		entries: make(map[string]cartEntry),
		ttl:     ttl,
	}
}

// Get loads a cart, returning an empty cart if none exists or the
// stored one has expired. Expired entries are evicted on read so the
// map does not accumulate abandoned sessions.
func (s *InMemoryCartStore) Get(ctx context.Context, tenantID uuid.UUID, sessionID string) (*cart.Cart, error) {
	key := cartKey(tenantID, sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.entries[key]
	if exists && time.Now().After(e.expiresAt) {
		delete(s.entries, key)
		exists = false
	}
	if !exists {
		return cart.New(tenantID, sessionID), nil
	}

	// Hand out a copy so callers cannot mutate the stored cart
	copied := *e.cart
	copied.Items = append([]cart.Item(nil), e.cart.Items...)
	return &copied, nil
}

// Save writes the cart back and refreshes its TTL
func (s *InMemoryCartStore) Save(ctx context.Context, c *cart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *c
	stored.Items = append([]cart.Item(nil), c.Items...)
	s.entries[cartKey(c.TenantID, c.SessionID)] = cartEntry{
		cart:      &stored,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// Delete drops the cart
func (s *InMemoryCartStore) Delete(ctx context.Context, tenantID uuid.UUID, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, cartKey(tenantID, sessionID))
	return nil
}

var _ cart.Store = (*InMemoryCartStore)(nil)
