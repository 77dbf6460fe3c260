package order

import (
	"context"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
)

// TxRepos bundles the repositories taking part in one transaction
type TxRepos struct {
	Orders   order.Repository
	Variants catalog.VariantRepository
}

// UnitOfWork runs a function against transactional repositories.
// Checkout locks variant rows, so its reads and writes must share
// one transaction.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(repos TxRepos) error) error
}
