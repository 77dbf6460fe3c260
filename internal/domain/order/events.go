package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderPlaced        = "OrderPlaced"
	EventTypeOrderStatusChanged = "OrderStatusChanged"
	EventTypeOrderCancelled     = "OrderCancelled"
)

// PlacedLine is an order line carried inside events
type PlacedLine struct {
	VariantID uuid.UUID       `json:"variant_id"`
	SKU       string          `json:"sku"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

func eventLines(o *Order) []PlacedLine {
	lines := make([]PlacedLine, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, PlacedLine{
			VariantID: item.VariantID,
			SKU:       item.SKU,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return lines
}

// OrderPlacedEvent is published when a checkout completes
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	Number      string          `json:"number"`
	UserID      uuid.UUID       `json:"user_id"`
	Email       string          `json:"email"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Lines       []PlacedLine    `json:"lines"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, o.ID, o.TenantID),
		Number:          o.Number,
		UserID:          o.UserID,
		Email:           o.Email,
		TotalAmount:     o.TotalAmount,
		Lines:           eventLines(o),
	}
}

// OrderStatusChangedEvent is published on every status transition
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	Number    string `json:"number"`
	OldStatus Status `json:"old_status"`
	NewStatus Status `json:"new_status"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(o *Order, oldStatus, newStatus Status) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, o.ID, o.TenantID),
		Number:          o.Number,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// OrderCancelledEvent is published when an order is cancelled.
// It carries the lines so stock can be restored.
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	Number string       `json:"number"`
	Reason string       `json:"reason"`
	Lines  []PlacedLine `json:"lines"`
}

// NewOrderCancelledEvent creates a new OrderCancelledEvent
func NewOrderCancelledEvent(o *Order, reason string) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, AggregateTypeOrder, o.ID, o.TenantID),
		Number:          o.Number,
		Reason:          reason,
		Lines:           eventLines(o),
	}
}
