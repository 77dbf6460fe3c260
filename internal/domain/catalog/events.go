package catalog

import (
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeProduct = "Product"
	AggregateTypeVariant = "ProductVariant"
)

// Event type constants
const (
	EventTypeProductCreated = "ProductCreated"
	EventTypeProductUpdated = "ProductUpdated"
	EventTypeProductDeleted = "ProductDeleted"
	EventTypeVariantCreated = "VariantCreated"
	EventTypeVariantUpdated = "VariantUpdated"
	EventTypeVariantDeleted = "VariantDeleted"
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, p.ID, p.TenantID),
		Name:            p.Name,
		Slug:            p.Slug,
	}
}

// ProductUpdatedEvent is published when a product changes.
// The search indexer listens for it to refresh the product's variants.
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	IsActive bool   `json:"is_active"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(p *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, AggregateTypeProduct, p.ID, p.TenantID),
		Name:            p.Name,
		Slug:            p.Slug,
		IsActive:        p.IsActive,
	}
}

// ProductDeletedEvent is published when a product is removed
type ProductDeletedEvent struct {
	shared.BaseDomainEvent
	Slug string `json:"slug"`
}

// NewProductDeletedEvent creates a new ProductDeletedEvent
func NewProductDeletedEvent(p *Product) *ProductDeletedEvent {
	return &ProductDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductDeleted, AggregateTypeProduct, p.ID, p.TenantID),
		Slug:            p.Slug,
	}
}

// VariantCreatedEvent is published when a variant is created
type VariantCreatedEvent struct {
	shared.BaseDomainEvent
	SKU string `json:"sku"`
}

// NewVariantCreatedEvent creates a new VariantCreatedEvent
func NewVariantCreatedEvent(v *ProductVariant) *VariantCreatedEvent {
	return &VariantCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVariantCreated, AggregateTypeVariant, v.ID, v.TenantID),
		SKU:             v.SKU,
	}
}

// VariantUpdatedEvent is published whenever a variant's price,
// options, stock, or status change
type VariantUpdatedEvent struct {
	shared.BaseDomainEvent
	SKU      string          `json:"sku"`
	Price    decimal.Decimal `json:"price"`
	IsActive bool            `json:"is_active"`
}

// NewVariantUpdatedEvent creates a new VariantUpdatedEvent
func NewVariantUpdatedEvent(v *ProductVariant) *VariantUpdatedEvent {
	return &VariantUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVariantUpdated, AggregateTypeVariant, v.ID, v.TenantID),
		SKU:             v.SKU,
		Price:           v.EffectivePrice(),
		IsActive:        v.IsActive,
	}
}

// VariantDeletedEvent is published when a variant is removed so the
// search index can drop its document
type VariantDeletedEvent struct {
	shared.BaseDomainEvent
	SKU string `json:"sku"`
}

// NewVariantDeletedEvent creates a new VariantDeletedEvent
func NewVariantDeletedEvent(v *ProductVariant) *VariantDeletedEvent {
	return &VariantDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVariantDeleted, AggregateTypeVariant, v.ID, v.TenantID),
		SKU:             v.SKU,
	}
}
