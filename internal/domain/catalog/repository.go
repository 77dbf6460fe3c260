package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by ID within a store
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Category, error)

	// FindBySlug finds a category by slug within a store
	FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*Category, error)

	// FindAll lists all categories of a store ordered by sort order
	FindAll(ctx context.Context, tenantID uuid.UUID) ([]Category, error)

	// FindChildren lists the direct children of a category
	FindChildren(ctx context.Context, tenantID, parentID uuid.UUID) ([]Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, c *Category) error

	// Delete deletes a category
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// ExistsBySlug checks if a slug is taken within a store
	ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (bool, error)
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by ID within a store
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)

	// FindBySlug finds a product by slug within a store
	FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*Product, error)

	// FindAll finds products matching the filter within a store
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Product, error)

	// FindActive finds active products, optionally narrowed to a category
	FindActive(ctx context.Context, tenantID uuid.UUID, categoryID *uuid.UUID, filter shared.Filter) ([]Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, p *Product) error

	// Delete deletes a product and its variants
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// Count counts products matching the filter within a store
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// CountActive counts active products, optionally narrowed to a category
	CountActive(ctx context.Context, tenantID uuid.UUID, categoryID *uuid.UUID) (int64, error)

	// ExistsBySlug checks if a slug is taken within a store
	ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (bool, error)
}

// VariantRepository defines the interface for variant persistence
type VariantRepository interface {
	// FindByID finds a variant by ID within a store
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*ProductVariant, error)

	// FindByIDForUpdate finds a variant and locks its row for the
	// duration of the surrounding transaction
	FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*ProductVariant, error)

	// FindBySKU finds a variant by SKU within a store
	FindBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*ProductVariant, error)

	// FindByProduct lists all variants of a product
	FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]ProductVariant, error)

	// FindByIDs finds multiple variants by their IDs
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]ProductVariant, error)

	// FindAll finds variants matching the filter within a store
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ProductVariant, error)

	// Save creates or updates a variant
	Save(ctx context.Context, v *ProductVariant) error

	// Delete deletes a variant
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// ExistsBySKU checks if a SKU is taken within a store
	ExistsBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (bool, error)
}

// ReviewRepository defines the interface for review persistence
type ReviewRepository interface {
	// FindByID finds a review by ID within a store
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Review, error)

	// FindByProduct lists reviews of a product, newest first
	FindByProduct(ctx context.Context, tenantID, productID uuid.UUID, filter shared.Filter) ([]Review, error)

	// FindByProductAndUser finds the review a user left on a product
	FindByProductAndUser(ctx context.Context, tenantID, productID, userID uuid.UUID) (*Review, error)

	// AverageRating returns the mean rating of a product and the review count
	AverageRating(ctx context.Context, tenantID, productID uuid.UUID) (float64, int64, error)

	// Save creates or updates a review
	Save(ctx context.Context, r *Review) error

	// Delete deletes a review
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
