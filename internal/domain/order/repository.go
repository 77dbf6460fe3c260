package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Repository defines the interface for order persistence
type Repository interface {
	// FindByID finds an order with its items by ID within a store
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)

	// FindByNumber finds an order by its order number within a store
	FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*Order, error)

	// FindByUser lists a user's orders, newest first
	FindByUser(ctx context.Context, tenantID, userID uuid.UUID, filter shared.Filter) ([]Order, error)

	// FindAll finds orders matching the filter within a store
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Order, error)

	// FindByStatus finds orders in a given status within a store
	FindByStatus(ctx context.Context, tenantID uuid.UUID, status Status, filter shared.Filter) ([]Order, error)

	// Save creates or updates an order with its items
	Save(ctx context.Context, o *Order) error

	// Count counts orders matching the filter within a store
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// CountByUser counts a user's orders
	CountByUser(ctx context.Context, tenantID, userID uuid.UUID) (int64, error)
}
