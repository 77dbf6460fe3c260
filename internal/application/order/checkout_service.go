package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CheckoutService turns a session cart into a placed order
type CheckoutService struct {
	uow         UnitOfWork
	cartStore   cart.Store
	productRepo catalog.ProductRepository
	userRepo    identity.UserRepository
	addressRepo identity.AddressRepository
	eventBus    shared.EventBus
	logger      *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	uow UnitOfWork,
	cartStore cart.Store,
	productRepo catalog.ProductRepository,
	userRepo identity.UserRepository,
	addressRepo identity.AddressRepository,
	eventBus shared.EventBus,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		uow:         uow,
		cartStore:   cartStore,
		productRepo: productRepo,
		userRepo:    userRepo,
		addressRepo: addressRepo,
		eventBus:    eventBus,
		logger:      logger,
	}
}

// Checkout places an order from the session cart. Stock is deducted
// under row locks in a single transaction with the order insert, so
// two shoppers cannot both buy the last unit. Prices and product
// names are snapshotted into the order lines at this moment.
func (s *CheckoutService) Checkout(ctx context.Context, tenantID, userID uuid.UUID, sessionID string, input CheckoutInput) (*Response, error) {
	user, err := s.userRepo.FindByID(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	shipping, err := s.resolveShipping(ctx, tenantID, userID, input)
	if err != nil {
		return nil, err
	}

	c, err := s.cartStore.Get(ctx, tenantID, sessionID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, shared.ErrEmptyCart
	}

	o, err := order.New(tenantID, userID, user.Email, shipping)
	if err != nil {
		return nil, err
	}

	var touched []*catalog.ProductVariant
	err = s.uow.Execute(ctx, func(repos TxRepos) error {
		touched = touched[:0]
		for _, line := range c.Items {
			variant, err := repos.Variants.FindByIDForUpdate(ctx, tenantID, line.VariantID)
			if err != nil {
				return err
			}
			if !variant.IsActive {
				return shared.NewDomainError("VARIANT_UNAVAILABLE", "An item in your cart is no longer available")
			}
			if err := variant.DeductStock(line.Quantity); err != nil {
				return err
			}
			if err := repos.Variants.Save(ctx, variant); err != nil {
				return err
			}
			touched = append(touched, variant)
		}

		productNames, err := s.lookupProductNames(ctx, tenantID, touched)
		if err != nil {
			return err
		}
		for i, line := range c.Items {
			variant := touched[i]
			if err := o.AddItem(
				variant.ProductID,
				variant.ID,
				productNames[variant.ProductID],
				variant.SKU,
				variant.Label(),
				variant.EffectivePrice(),
				line.Quantity,
			); err != nil {
				return err
			}
		}

		if err := o.Place(); err != nil {
			return err
		}
		return repos.Orders.Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	if err := s.cartStore.Delete(ctx, tenantID, sessionID); err != nil {
		s.logger.Warn("failed to clear cart after checkout",
			zap.String("order_number", o.Number),
			zap.Error(err),
		)
	}

	s.publishEvents(ctx, o)
	for _, variant := range touched {
		s.publishEvents(ctx, variant)
	}

	s.logger.Info("order placed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("order_number", o.Number),
		zap.Int("items", o.ItemCount()),
		zap.String("total", o.TotalAmount.String()),
	)

	return ToResponse(o), nil
}

func (s *CheckoutService) resolveShipping(ctx context.Context, tenantID, userID uuid.UUID, input CheckoutInput) (order.ShippingAddress, error) {
	if input.AddressID != nil {
		addr, err := s.addressRepo.FindByID(ctx, tenantID, userID, *input.AddressID)
		if err != nil {
			return order.ShippingAddress{}, err
		}
		return order.ShippingAddress{
			FullName:   addr.FullName,
			Line1:      addr.Line1,
			Line2:      addr.Line2,
			City:       addr.City,
			Region:     addr.Region,
			PostalCode: addr.PostalCode,
			Country:    addr.Country,
			Phone:      addr.Phone,
		}, nil
	}
	if input.Shipping != nil {
		return order.ShippingAddress{
			FullName:   input.Shipping.FullName,
			Line1:      input.Shipping.Line1,
			Line2:      input.Shipping.Line2,
			City:       input.Shipping.City,
			Region:     input.Shipping.Region,
			PostalCode: input.Shipping.PostalCode,
			Country:    input.Shipping.Country,
			Phone:      input.Shipping.Phone,
		}, nil
	}
	return order.ShippingAddress{}, shared.NewDomainError("INVALID_ADDRESS", "A shipping address is required")
}

func (s *CheckoutService) lookupProductNames(ctx context.Context, tenantID uuid.UUID, variants []*catalog.ProductVariant) (map[uuid.UUID]string, error) {
	productIDs := make([]uuid.UUID, 0, len(variants))
	seen := make(map[uuid.UUID]bool, len(variants))
	for _, variant := range variants {
		if !seen[variant.ProductID] {
			seen[variant.ProductID] = true
			productIDs = append(productIDs, variant.ProductID)
		}
	}

	products, err := s.productRepo.FindByIDs(ctx, tenantID, productIDs)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(products))
	for i := range products {
		names[products[i].ID] = products[i].Name
	}
	return names, nil
}

func (s *CheckoutService) publishEvents(ctx context.Context, root shared.AggregateRoot) {
	events := root.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish order events", zap.Error(err))
	}
	root.ClearDomainEvents()
}
