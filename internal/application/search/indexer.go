package search

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/search"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Indexer keeps the search index in sync with the catalog by
// consuming catalog events. Index writes are best effort; the
// database stays the source of truth and a reindex repairs drift.
type Indexer struct {
	index       search.Index
	productRepo catalog.ProductRepository
	variantRepo catalog.VariantRepository
	logger      *zap.Logger
}

var _ shared.EventHandler = (*Indexer)(nil)

// NewIndexer creates a new Indexer
func NewIndexer(index search.Index, productRepo catalog.ProductRepository, variantRepo catalog.VariantRepository, logger *zap.Logger) *Indexer {
	return &Indexer{
		index:       index,
		productRepo: productRepo,
		variantRepo: variantRepo,
		logger:      logger,
	}
}

// EventTypes returns the catalog events the indexer consumes
func (i *Indexer) EventTypes() []string {
	return []string{
		catalog.EventTypeVariantCreated,
		catalog.EventTypeVariantUpdated,
		catalog.EventTypeVariantDeleted,
		catalog.EventTypeProductUpdated,
		catalog.EventTypeProductDeleted,
	}
}

// Handle applies one catalog event to the index
func (i *Indexer) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch event.EventType() {
	case catalog.EventTypeVariantCreated, catalog.EventTypeVariantUpdated:
		return i.indexVariant(ctx, event.TenantID(), event.AggregateID())
	case catalog.EventTypeVariantDeleted:
		return i.index.Delete(ctx, event.TenantID(), event.AggregateID())
	case catalog.EventTypeProductUpdated:
		return i.reindexProduct(ctx, event.TenantID(), event.AggregateID())
	case catalog.EventTypeProductDeleted:
		return i.index.DeleteByProduct(ctx, event.TenantID(), event.AggregateID())
	}
	return nil
}

// Reindex rebuilds a store's index from the catalog
func (i *Indexer) Reindex(ctx context.Context, tenantID uuid.UUID) (int, error) {
	if err := i.index.Clear(ctx, tenantID); err != nil {
		return 0, err
	}

	indexed := 0
	filter := shared.DefaultFilter()
	filter.PageSize = 200
	for page := 1; ; page++ {
		filter.Page = page
		products, err := i.productRepo.FindAll(ctx, tenantID, filter)
		if err != nil {
			return indexed, err
		}
		if len(products) == 0 {
			break
		}
		for p := range products {
			n, err := i.indexProductVariants(ctx, &products[p])
			if err != nil {
				return indexed, err
			}
			indexed += n
		}
	}

	i.logger.Info("search index rebuilt",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("documents", indexed),
	)
	return indexed, nil
}

func (i *Indexer) indexVariant(ctx context.Context, tenantID, variantID uuid.UUID) error {
	variant, err := i.variantRepo.FindByID(ctx, tenantID, variantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return i.index.Delete(ctx, tenantID, variantID)
		}
		return err
	}
	product, err := i.productRepo.FindByID(ctx, tenantID, variant.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return i.index.Delete(ctx, tenantID, variantID)
		}
		return err
	}
	return i.index.Index(ctx, buildDocument(product, variant))
}

func (i *Indexer) reindexProduct(ctx context.Context, tenantID, productID uuid.UUID) error {
	product, err := i.productRepo.FindByID(ctx, tenantID, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return i.index.DeleteByProduct(ctx, tenantID, productID)
		}
		return err
	}
	_, err = i.indexProductVariants(ctx, product)
	return err
}

func (i *Indexer) indexProductVariants(ctx context.Context, product *catalog.Product) (int, error) {
	variants, err := i.variantRepo.FindByProduct(ctx, product.TenantID, product.ID)
	if err != nil {
		return 0, err
	}
	for v := range variants {
		if err := i.index.Index(ctx, buildDocument(product, &variants[v])); err != nil {
			return v, err
		}
	}
	return len(variants), nil
}

func buildDocument(product *catalog.Product, variant *catalog.ProductVariant) search.VariantDocument {
	return search.VariantDocument{
		VariantID:   variant.ID,
		ProductID:   product.ID,
		TenantID:    product.TenantID,
		ProductName: product.Name,
		ProductSlug: product.Slug,
		SKU:         variant.SKU,
		Color:       variant.Color,
		Size:        variant.Size,
		Price:       variant.EffectivePrice(),
		IsActive:    product.IsActive && variant.IsActive,
	}
}
