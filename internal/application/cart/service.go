package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service manages session carts. Carts live in the cart store, not
// the database, and survive login thanks to the session cookie.
type Service struct {
	store       cart.Store
	variantRepo catalog.VariantRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewService creates a new cart Service
func NewService(store cart.Store, variantRepo catalog.VariantRepository, productRepo catalog.ProductRepository, logger *zap.Logger) *Service {
	return &Service{
		store:       store,
		variantRepo: variantRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Get returns the cart enriched with current catalog data. Lines
// whose variant has been removed from the catalog are dropped.
func (s *Service) Get(ctx context.Context, tenantID uuid.UUID, sessionID string) (*CartResponse, error) {
	c, err := s.store.Get(ctx, tenantID, sessionID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, c)
}

// AddItem puts a variant in the cart, adding to any existing quantity
func (s *Service) AddItem(ctx context.Context, tenantID uuid.UUID, sessionID string, input AddItemInput) (*CartResponse, error) {
	return s.add(ctx, tenantID, sessionID, input.VariantID, input.Quantity, false)
}

// UpdateItem sets a line's quantity, replacing the current one
func (s *Service) UpdateItem(ctx context.Context, tenantID uuid.UUID, sessionID string, variantID uuid.UUID, input UpdateItemInput) (*CartResponse, error) {
	return s.add(ctx, tenantID, sessionID, variantID, input.Quantity, true)
}

func (s *Service) add(ctx context.Context, tenantID uuid.UUID, sessionID string, variantID uuid.UUID, quantity int, override bool) (*CartResponse, error) {
	variant, err := s.variantRepo.FindByID(ctx, tenantID, variantID)
	if err != nil {
		return nil, err
	}
	if !variant.IsActive {
		return nil, shared.NewDomainError("VARIANT_UNAVAILABLE", "This item is not available")
	}

	c, err := s.store.Get(ctx, tenantID, sessionID)
	if err != nil {
		return nil, err
	}

	requested := quantity
	if !override {
		if line, ok := c.Get(variantID); ok {
			requested += line.Quantity
		}
	}
	if !variant.InStock(requested) {
		return nil, shared.NewDomainError("INSUFFICIENT_STOCK", "Not enough stock for this item")
	}

	if err := c.Add(variantID, variant.EffectivePrice(), quantity, override); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.enrich(ctx, c)
}

// RemoveItem drops a variant from the cart
func (s *Service) RemoveItem(ctx context.Context, tenantID uuid.UUID, sessionID string, variantID uuid.UUID) (*CartResponse, error) {
	c, err := s.store.Get(ctx, tenantID, sessionID)
	if err != nil {
		return nil, err
	}
	c.Remove(variantID)
	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.enrich(ctx, c)
}

// Clear empties the cart
func (s *Service) Clear(ctx context.Context, tenantID uuid.UUID, sessionID string) error {
	return s.store.Delete(ctx, tenantID, sessionID)
}

func (s *Service) enrich(ctx context.Context, c *cart.Cart) (*CartResponse, error) {
	resp := &CartResponse{
		Items:    []LineResponse{},
		Quantity: c.Quantity(),
		Total:    c.Total(),
	}
	if c.IsEmpty() {
		return resp, nil
	}

	variantIDs := make([]uuid.UUID, len(c.Items))
	for i, item := range c.Items {
		variantIDs[i] = item.VariantID
	}
	variants, err := s.variantRepo.FindByIDs(ctx, c.TenantID, variantIDs)
	if err != nil {
		return nil, err
	}
	variantsByID := make(map[uuid.UUID]*catalog.ProductVariant, len(variants))
	productIDs := make([]uuid.UUID, 0, len(variants))
	for i := range variants {
		variantsByID[variants[i].ID] = &variants[i]
		productIDs = append(productIDs, variants[i].ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, c.TenantID, productIDs)
	if err != nil {
		return nil, err
	}
	productNames := make(map[uuid.UUID]string, len(products))
	for i := range products {
		productNames[products[i].ID] = products[i].Name
	}

	// Pruning while ranging would shift the remaining lines under the
	// loop, so stale variant IDs are collected and removed afterwards.
	var stale []uuid.UUID
	for _, item := range c.Items {
		variant, ok := variantsByID[item.VariantID]
		if !ok {
			stale = append(stale, item.VariantID)
			continue
		}
		resp.Items = append(resp.Items, LineResponse{
			VariantID:   variant.ID,
			ProductID:   variant.ProductID,
			ProductName: productNames[variant.ProductID],
			SKU:         variant.SKU,
			Label:       variant.Label(),
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal(),
			InStock:     variant.IsActive && variant.InStock(item.Quantity),
		})
	}
	if len(stale) > 0 {
		for _, variantID := range stale {
			c.Remove(variantID)
		}
		resp.Quantity = c.Quantity()
		resp.Total = c.Total()
		if err := s.store.Save(ctx, c); err != nil {
			s.logger.Warn("failed to persist cart after pruning removed variants", zap.Error(err))
		}
	}
	return resp, nil
}
