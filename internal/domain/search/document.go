package search

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VariantDocument is the denormalized search projection of a
// product variant. It is rebuilt from catalog events; the database
// stays the source of truth.
type VariantDocument struct {
	VariantID   uuid.UUID       `json:"variant_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	TenantID    uuid.UUID       `json:"tenant_id"`
	ProductName string          `json:"product_name"`
	ProductSlug string          `json:"product_slug"`
	SKU         string          `json:"sku"`
	Color       string          `json:"color"`
	Size        string          `json:"size"`
	Price       decimal.Decimal `json:"price"`
	IsActive    bool            `json:"is_active"`
}

// SearchText returns the fields that feed the inverted index
func (d VariantDocument) SearchText() []string {
	return []string{d.ProductName, d.SKU, d.Color, d.Size}
}

// Index is the per-store variant search index
type Index interface {
	// Index upserts a variant document
	Index(ctx context.Context, doc VariantDocument) error

	// Delete removes a variant document
	Delete(ctx context.Context, tenantID, variantID uuid.UUID) error

	// DeleteByProduct removes all documents of a product
	DeleteByProduct(ctx context.Context, tenantID, productID uuid.UUID) error

	// Search matches every query term against the index and returns
	// active documents, up to limit
	Search(ctx context.Context, tenantID uuid.UUID, query string, limit int) ([]VariantDocument, error)

	// Clear drops a store's entire index, used before a reindex
	Clear(ctx context.Context, tenantID uuid.UUID) error
}
