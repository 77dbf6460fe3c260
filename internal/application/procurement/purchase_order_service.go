package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/procurement"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PurchaseOrderService handles inbound stock orders
type PurchaseOrderService struct {
	poRepo       procurement.PurchaseOrderRepository
	supplierRepo procurement.SupplierRepository
	variantRepo  catalog.VariantRepository
	uow          UnitOfWork
	eventBus     shared.EventBus
	logger       *zap.Logger
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(
	poRepo procurement.PurchaseOrderRepository,
	supplierRepo procurement.SupplierRepository,
	variantRepo catalog.VariantRepository,
	uow UnitOfWork,
	eventBus shared.EventBus,
	logger *zap.Logger,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		poRepo:       poRepo,
		supplierRepo: supplierRepo,
		variantRepo:  variantRepo,
		uow:          uow,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// Create opens a draft purchase order against an active supplier
func (s *PurchaseOrderService) Create(ctx context.Context, tenantID uuid.UUID, input CreatePurchaseOrderInput) (*PurchaseOrderResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, tenantID, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if !supplier.IsActive {
		return nil, shared.NewDomainError("SUPPLIER_INACTIVE", "Cannot order from a deactivated supplier")
	}

	po, err := procurement.NewPurchaseOrder(tenantID, supplier.ID, supplier.Name)
	if err != nil {
		return nil, err
	}
	if input.Notes != "" {
		po.SetNotes(input.Notes)
	}

	if err := s.poRepo.Save(ctx, po); err != nil {
		return nil, err
	}
	return ToPurchaseOrderResponse(po), nil
}

// AddItem adds an inventory line to a draft, resolving the SKU to a
// catalog variant
func (s *PurchaseOrderService) AddItem(ctx context.Context, tenantID, poID uuid.UUID, input PurchaseOrderItemInput) (*PurchaseOrderResponse, error) {
	po, err := s.poRepo.FindByID(ctx, tenantID, poID)
	if err != nil {
		return nil, err
	}

	variant, err := s.variantRepo.FindBySKU(ctx, tenantID, input.SKU)
	if err != nil {
		return nil, err
	}

	if err := po.AddItem(variant.ID, variant.SKU, input.Quantity, input.UnitCost); err != nil {
		return nil, err
	}
	if err := s.poRepo.Save(ctx, po); err != nil {
		return nil, err
	}
	return ToPurchaseOrderResponse(po), nil
}

// RemoveItem drops a line from a draft
func (s *PurchaseOrderService) RemoveItem(ctx context.Context, tenantID, poID, itemID uuid.UUID) (*PurchaseOrderResponse, error) {
	po, err := s.poRepo.FindByID(ctx, tenantID, poID)
	if err != nil {
		return nil, err
	}

	if err := po.RemoveItem(itemID); err != nil {
		return nil, err
	}
	if err := s.poRepo.Save(ctx, po); err != nil {
		return nil, err
	}
	return ToPurchaseOrderResponse(po), nil
}

// Place sends the order to the supplier
func (s *PurchaseOrderService) Place(ctx context.Context, tenantID, poID uuid.UUID) (*PurchaseOrderResponse, error) {
	po, err := s.poRepo.FindByID(ctx, tenantID, poID)
	if err != nil {
		return nil, err
	}

	if err := po.Place(); err != nil {
		return nil, err
	}
	if err := s.poRepo.Save(ctx, po); err != nil {
		return nil, err
	}
	return ToPurchaseOrderResponse(po), nil
}

// Receive marks the order received and adds every line's quantity
// to its variant's stock, all in one transaction
func (s *PurchaseOrderService) Receive(ctx context.Context, tenantID, poID uuid.UUID) (*PurchaseOrderResponse, error) {
	po, err := s.poRepo.FindByID(ctx, tenantID, poID)
	if err != nil {
		return nil, err
	}

	if err := po.Receive(); err != nil {
		return nil, err
	}

	var touched []*catalog.ProductVariant
	err = s.uow.Execute(ctx, func(repos TxRepos) error {
		touched = touched[:0]
		for _, item := range po.Items {
			variant, err := repos.Variants.FindByIDForUpdate(ctx, tenantID, item.VariantID)
			if err != nil {
				return err
			}
			if err := variant.Restock(item.Quantity); err != nil {
				return err
			}
			if err := repos.Variants.Save(ctx, variant); err != nil {
				return err
			}
			touched = append(touched, variant)
		}
		return repos.PurchaseOrders.Save(ctx, po)
	})
	if err != nil {
		return nil, err
	}

	for _, variant := range touched {
		s.publishEvents(ctx, variant)
	}

	s.logger.Info("purchase order received",
		zap.String("tenant_id", tenantID.String()),
		zap.String("po_number", po.Number),
		zap.Int("lines", len(po.Items)),
	)
	return ToPurchaseOrderResponse(po), nil
}

// Cancel cancels a draft or placed order
func (s *PurchaseOrderService) Cancel(ctx context.Context, tenantID, poID uuid.UUID) (*PurchaseOrderResponse, error) {
	po, err := s.poRepo.FindByID(ctx, tenantID, poID)
	if err != nil {
		return nil, err
	}

	if err := po.Cancel(); err != nil {
		return nil, err
	}
	if err := s.poRepo.Save(ctx, po); err != nil {
		return nil, err
	}
	return ToPurchaseOrderResponse(po), nil
}

// GetByID retrieves a purchase order with its lines
func (s *PurchaseOrderService) GetByID(ctx context.Context, tenantID, poID uuid.UUID) (*PurchaseOrderResponse, error) {
	po, err := s.poRepo.FindByID(ctx, tenantID, poID)
	if err != nil {
		return nil, err
	}
	return ToPurchaseOrderResponse(po), nil
}

// List lists purchase orders
func (s *PurchaseOrderService) List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]PurchaseOrderResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		status := procurement.PurchaseOrderStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Unknown purchase order status")
		}
		domainFilter.Filters["status"] = filter.Status
	}

	pos, err := s.poRepo.FindAll(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.poRepo.Count(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PurchaseOrderResponse, len(pos))
	for i := range pos {
		responses[i] = *ToPurchaseOrderResponse(&pos[i])
	}
	return responses, total, nil
}

func (s *PurchaseOrderService) publishEvents(ctx context.Context, root shared.AggregateRoot) {
	events := root.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish procurement events", zap.Error(err))
	}
	root.ClearDomainEvents()
}
