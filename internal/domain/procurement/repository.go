package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// SupplierRepository defines the interface for supplier persistence
type SupplierRepository interface {
	// FindByID finds a supplier by ID within a store
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Supplier, error)

	// FindAll finds suppliers matching the filter within a store
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Supplier, error)

	// Save creates or updates a supplier
	Save(ctx context.Context, s *Supplier) error

	// Delete deletes a supplier
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// Count counts suppliers matching the filter within a store
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}

// PurchaseOrderRepository defines the interface for purchase order persistence
type PurchaseOrderRepository interface {
	// FindByID finds a purchase order with its items within a store
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*PurchaseOrder, error)

	// FindByNumber finds a purchase order by its number within a store
	FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*PurchaseOrder, error)

	// FindAll finds purchase orders matching the filter within a store
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]PurchaseOrder, error)

	// FindBySupplier lists purchase orders against a supplier
	FindBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID, filter shared.Filter) ([]PurchaseOrder, error)

	// Save creates or updates a purchase order with its items
	Save(ctx context.Context, po *PurchaseOrder) error

	// Count counts purchase orders matching the filter within a store
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}
