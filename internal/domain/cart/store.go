package cart

import (
	"context"

	"github.com/google/uuid"
)

// Store persists carts between requests. Implementations are keyed
// by (store, session) and expire idle carts after a TTL.
type Store interface {
	// Get loads a cart, returning an empty cart if none exists
	Get(ctx context.Context, tenantID uuid.UUID, sessionID string) (*Cart, error)

	// Save writes the cart back and refreshes its TTL
	Save(ctx context.Context, c *Cart) error

	// Delete drops the cart, e.g. after checkout
	Delete(ctx context.Context, tenantID uuid.UUID, sessionID string) error
}
