package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/procurement"
	"gorm.io/gorm"
)

// GormVariantUsage answers whether order history or purchase orders
// still reference a variant
type GormVariantUsage struct {
	db *gorm.DB
}

// NewGormVariantUsage creates a new GormVariantUsage
func NewGormVariantUsage(db *gorm.DB) *GormVariantUsage {
	return &GormVariantUsage{db: db}
}

// VariantInUse reports whether any order item or purchase order item
// references the variant within the store
func (u *GormVariantUsage) VariantInUse(ctx context.Context, tenantID, variantID uuid.UUID) (bool, error) {
	var count int64
	if err := u.db.WithContext(ctx).
		Model(&order.Item{}).
		Where("tenant_id = ? AND variant_id = ?", tenantID, variantID).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	if err := u.db.WithContext(ctx).
		Model(&procurement.PurchaseOrderItem{}).
		Where("tenant_id = ? AND variant_id = ?", tenantID, variantID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
