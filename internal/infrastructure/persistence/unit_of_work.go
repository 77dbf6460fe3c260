package persistence

import (
	"context"

	orderapp "github.com/storefront/backend/internal/application/order"
	procurementapp "github.com/storefront/backend/internal/application/procurement"
	"gorm.io/gorm"
)

// GormUnitOfWork runs checkout and cancellation work inside a single
// database transaction, handing the callback repositories bound to it
type GormUnitOfWork struct {
	db *gorm.DB
}

var _ orderapp.UnitOfWork = (*GormUnitOfWork)(nil)

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Execute runs fn in a transaction. The transaction commits when fn
// returns nil and rolls back otherwise.
func (u *GormUnitOfWork) Execute(ctx context.Context, fn func(repos orderapp.TxRepos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(orderapp.TxRepos{
			Orders:   NewGormOrderRepository(tx),
			Variants: NewGormVariantRepository(tx),
		})
	})
}

// GormProcurementUnitOfWork is the procurement counterpart, pairing
// purchase order writes with variant restocks
type GormProcurementUnitOfWork struct {
	db *gorm.DB
}

var _ procurementapp.UnitOfWork = (*GormProcurementUnitOfWork)(nil)

// NewGormProcurementUnitOfWork creates a new GormProcurementUnitOfWork
func NewGormProcurementUnitOfWork(db *gorm.DB) *GormProcurementUnitOfWork {
	return &GormProcurementUnitOfWork{db: db}
}

// Execute runs fn in a transaction. The transaction commits when fn
// returns nil and rolls back otherwise.
func (u *GormProcurementUnitOfWork) Execute(ctx context.Context, fn func(repos procurementapp.TxRepos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(procurementapp.TxRepos{
			PurchaseOrders: NewGormPurchaseOrderRepository(tx),
			Variants:       NewGormVariantRepository(tx),
		})
	})
}
