package procurement

import (
	"context"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/procurement"
)

// TxRepos bundles the repositories taking part in one transaction
type TxRepos struct {
	PurchaseOrders procurement.PurchaseOrderRepository
	Variants       catalog.VariantRepository
}

// UnitOfWork runs a function against transactional repositories.
// Receiving a purchase order restocks variants under row locks in
// the same transaction that marks the order received.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(repos TxRepos) error) error
}
