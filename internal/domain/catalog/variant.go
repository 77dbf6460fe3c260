package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductVariant is a concrete purchasable unit of a product.
// It carries the SKU, price, and stock; the cart and order lines
// always reference a variant, never the bare product.
type ProductVariant struct {
	shared.TenantAggregateRoot
	ProductID uuid.UUID        `gorm:"type:uuid;not null;index"`
	SKU       string           `gorm:"type:varchar(50);not null;uniqueIndex:idx_variant_tenant_sku,priority:2"`
	Color     string           `gorm:"type:varchar(50)"`
	Size      string           `gorm:"type:varchar(50)"`
	Price     decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	SalePrice *decimal.Decimal `gorm:"type:decimal(18,2)"`
	Stock     int              `gorm:"not null;default:0"`
	IsActive  bool             `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ProductVariant) TableName() string {
	return "product_variants"
}

// NewProductVariant creates a new variant of a product
func NewProductVariant(tenantID, productID uuid.UUID, sku string, price decimal.Decimal) (*ProductVariant, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	v := &ProductVariant{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProductID:           productID,
		SKU:                 strings.ToUpper(sku),
		Price:               price,
		IsActive:            true,
	}

	v.AddDomainEvent(NewVariantCreatedEvent(v))

	return v, nil
}

// SetOptions sets the variant's color and size options
func (v *ProductVariant) SetOptions(color, size string) error {
	if len(color) > 50 {
		return shared.NewDomainError("INVALID_OPTION", "Color cannot exceed 50 characters")
	}
	if len(size) > 50 {
		return shared.NewDomainError("INVALID_OPTION", "Size cannot exceed 50 characters")
	}

	v.Color = strings.TrimSpace(color)
	v.Size = strings.TrimSpace(size)
	v.UpdatedAt = time.Now()

	v.AddDomainEvent(NewVariantUpdatedEvent(v))

	return nil
}

// SetPrice sets the variant's regular price
func (v *ProductVariant) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	v.Price = price
	v.UpdatedAt = time.Now()

	v.AddDomainEvent(NewVariantUpdatedEvent(v))

	return nil
}

// SetSalePrice puts the variant on sale. The sale price must be
// lower than the regular price.
func (v *ProductVariant) SetSalePrice(salePrice decimal.Decimal) error {
	if salePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Sale price cannot be negative")
	}
	if salePrice.GreaterThanOrEqual(v.Price) {
		return shared.NewDomainError("INVALID_PRICE", "Sale price must be lower than the regular price")
	}

	v.SalePrice = &salePrice
	v.UpdatedAt = time.Now()

	v.AddDomainEvent(NewVariantUpdatedEvent(v))

	return nil
}

// ClearSalePrice takes the variant off sale
func (v *ProductVariant) ClearSalePrice() {
	v.SalePrice = nil
	v.UpdatedAt = time.Now()

	v.AddDomainEvent(NewVariantUpdatedEvent(v))
}

// EffectivePrice returns the price the shopper pays right now
func (v *ProductVariant) EffectivePrice() decimal.Decimal {
	if v.SalePrice != nil {
		return *v.SalePrice
	}
	return v.Price
}

// OnSale returns true if a sale price is set
func (v *ProductVariant) OnSale() bool {
	return v.SalePrice != nil
}

// SetStock replaces the stock level
func (v *ProductVariant) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	v.Stock = stock
	v.UpdatedAt = time.Now()

	v.AddDomainEvent(NewVariantUpdatedEvent(v))

	return nil
}

// DeductStock removes quantity from stock at checkout
func (v *ProductVariant) DeductStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if v.Stock < quantity {
		return shared.ErrInsufficientStock
	}

	v.Stock -= quantity
	v.UpdatedAt = time.Now()

	v.AddDomainEvent(NewVariantUpdatedEvent(v))

	return nil
}

// Restock adds quantity back to stock, e.g. after a cancellation
// or a received purchase order
func (v *ProductVariant) Restock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	v.Stock += quantity
	v.UpdatedAt = time.Now()

	v.AddDomainEvent(NewVariantUpdatedEvent(v))

	return nil
}

// InStock returns true if at least the given quantity is available
func (v *ProductVariant) InStock(quantity int) bool {
	return v.Stock >= quantity
}

// Activate makes the variant purchasable
func (v *ProductVariant) Activate() error {
	if v.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Variant is already active")
	}

	v.IsActive = true
	v.UpdatedAt = time.Now()

	v.AddDomainEvent(NewVariantUpdatedEvent(v))

	return nil
}

// Deactivate removes the variant from sale
func (v *ProductVariant) Deactivate() error {
	if !v.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Variant is already inactive")
	}

	v.IsActive = false
	v.UpdatedAt = time.Now()

	v.AddDomainEvent(NewVariantUpdatedEvent(v))

	return nil
}

// Label returns a human-readable description of the variant options
func (v *ProductVariant) Label() string {
	parts := make([]string, 0, 2)
	if v.Color != "" {
		parts = append(parts, v.Color)
	}
	if v.Size != "" {
		parts = append(parts, v.Size)
	}
	if len(parts) == 0 {
		return v.SKU
	}
	return strings.Join(parts, " / ")
}

func validateSKU(sku string) error {
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	for _, r := range sku {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_SKU", "SKU can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}
