package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service handles order retrieval and the fulfillment lifecycle
type Service struct {
	orderRepo order.Repository
	uow       UnitOfWork
	eventBus  shared.EventBus
	logger    *zap.Logger
}

// NewService creates a new order Service
func NewService(orderRepo order.Repository, uow UnitOfWork, eventBus shared.EventBus, logger *zap.Logger) *Service {
	return &Service{
		orderRepo: orderRepo,
		uow:       uow,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// GetByID retrieves an order. Shoppers may only see their own
// orders, staff may see any.
func (s *Service) GetByID(ctx context.Context, tenantID, id, requesterID uuid.UUID, isStaff bool) (*Response, error) {
	o, err := s.orderRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !isStaff && o.UserID != requesterID {
		return nil, shared.ErrNotFound
	}
	return ToResponse(o), nil
}

// GetByNumber retrieves an order by its order number
func (s *Service) GetByNumber(ctx context.Context, tenantID uuid.UUID, number string, requesterID uuid.UUID, isStaff bool) (*Response, error) {
	o, err := s.orderRepo.FindByNumber(ctx, tenantID, number)
	if err != nil {
		return nil, err
	}
	if !isStaff && o.UserID != requesterID {
		return nil, shared.ErrNotFound
	}
	return ToResponse(o), nil
}

// ListByUser lists a shopper's own orders, newest first
func (s *Service) ListByUser(ctx context.Context, tenantID, userID uuid.UUID, filter ListFilter) ([]Summary, int64, error) {
	domainFilter := toDomainFilter(filter)
	orders, err := s.orderRepo.FindByUser(ctx, tenantID, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.CountByUser(ctx, tenantID, userID)
	if err != nil {
		return nil, 0, err
	}
	return toSummaries(orders), total, nil
}

// ListAll lists a store's orders for staff
func (s *Service) ListAll(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]Summary, int64, error) {
	domainFilter := toDomainFilter(filter)

	var orders []order.Order
	var err error
	if filter.Status != "" {
		status := order.Status(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Unknown order status")
		}
		orders, err = s.orderRepo.FindByStatus(ctx, tenantID, status, domainFilter)
	} else {
		orders, err = s.orderRepo.FindAll(ctx, tenantID, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.Count(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return toSummaries(orders), total, nil
}

// MarkProcessing moves an order into fulfillment
func (s *Service) MarkProcessing(ctx context.Context, tenantID, id uuid.UUID) (*Response, error) {
	return s.advance(ctx, tenantID, id, (*order.Order).MarkProcessing)
}

// MarkShipped records that an order left the warehouse
func (s *Service) MarkShipped(ctx context.Context, tenantID, id uuid.UUID) (*Response, error) {
	return s.advance(ctx, tenantID, id, (*order.Order).MarkShipped)
}

// MarkDelivered records that an order reached the customer
func (s *Service) MarkDelivered(ctx context.Context, tenantID, id uuid.UUID) (*Response, error) {
	return s.advance(ctx, tenantID, id, (*order.Order).MarkDelivered)
}

func (s *Service) advance(ctx context.Context, tenantID, id uuid.UUID, transition func(*order.Order) error) (*Response, error) {
	o, err := s.orderRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := transition(o); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, o)
	return ToResponse(o), nil
}

// Cancel cancels an order and returns its units to stock. Shoppers
// may cancel their own orders while still pending; staff may cancel
// any order that has not shipped.
func (s *Service) Cancel(ctx context.Context, tenantID, id, requesterID uuid.UUID, isStaff bool, reason string) (*Response, error) {
	o, err := s.orderRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !isStaff {
		if o.UserID != requesterID {
			return nil, shared.ErrNotFound
		}
		if o.Status != order.StatusPending {
			return nil, shared.NewDomainError("INVALID_STATE", "Only pending orders can be cancelled")
		}
	}

	if err := o.Cancel(reason); err != nil {
		return nil, err
	}

	err = s.uow.Execute(ctx, func(repos TxRepos) error {
		for _, item := range o.Items {
			variant, err := repos.Variants.FindByIDForUpdate(ctx, tenantID, item.VariantID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					continue
				}
				return err
			}
			if err := variant.Restock(item.Quantity); err != nil {
				return err
			}
			if err := repos.Variants.Save(ctx, variant); err != nil {
				return err
			}
		}
		return repos.Orders.Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, o)
	s.logger.Info("order cancelled",
		zap.String("tenant_id", tenantID.String()),
		zap.String("order_number", o.Number),
	)
	return ToResponse(o), nil
}

func (s *Service) publishEvents(ctx context.Context, root shared.AggregateRoot) {
	events := root.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish order events", zap.Error(err))
	}
	root.ClearDomainEvents()
}

func toSummaries(orders []order.Order) []Summary {
	summaries := make([]Summary, len(orders))
	for i := range orders {
		summaries[i] = ToSummary(&orders[i])
	}
	return summaries
}

func toDomainFilter(filter ListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	domainFilter.OrderBy = "placed_at"
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	return domainFilter
}
