package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// Status represents the fulfillment status of an order
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// IsValid checks if the status is a known order status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can move to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusProcessing || target == StatusCancelled
	case StatusProcessing:
		return target == StatusShipped || target == StatusCancelled
	case StatusShipped:
		return target == StatusDelivered
	case StatusDelivered, StatusCancelled:
		return false // Terminal states
	}
	return false
}

// Item is a line of an order. Name, SKU, and unit price are
// snapshots taken at checkout; later catalog edits do not touch
// placed orders.
type Item struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	TenantID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null"`
	VariantID    uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName  string          `gorm:"type:varchar(200);not null"`
	SKU          string          `gorm:"type:varchar(50);not null"`
	VariantLabel string          `gorm:"type:varchar(120)"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Quantity     int             `gorm:"not null"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "order_items"
}

// ShippingAddress is the destination snapshot embedded in the order
type ShippingAddress struct {
	FullName   string `gorm:"type:varchar(200);not null"`
	Line1      string `gorm:"type:varchar(200);not null"`
	Line2      string `gorm:"type:varchar(200)"`
	City       string `gorm:"type:varchar(100);not null"`
	Region     string `gorm:"type:varchar(100)"`
	PostalCode string `gorm:"type:varchar(20);not null"`
	Country    string `gorm:"type:varchar(2);not null"`
	Phone      string `gorm:"type:varchar(50)"`
}

// Order is a placed customer order
type Order struct {
	shared.TenantAggregateRoot
	Number       string          `gorm:"type:varchar(30);not null;uniqueIndex:idx_order_tenant_number,priority:2"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Email        string          `gorm:"type:varchar(200);not null"`
	Items        []Item          `gorm:"foreignKey:OrderID"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status       Status          `gorm:"type:varchar(20);not null;default:'pending';index"`
	Shipping     ShippingAddress `gorm:"embedded;embeddedPrefix:ship_"`
	PlacedAt     time.Time       `gorm:"not null;index"`
	ShippedAt    *time.Time
	DeliveredAt  *time.Time
	CancelledAt  *time.Time
	CancelReason string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewNumber generates a human-readable order number
func NewNumber(at time.Time) string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("SO-%s-%s", at.Format("20060102"), suffix)
}

// New creates a pending order for a user
func New(tenantID, userID uuid.UUID, email string, shipping ShippingAddress) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if shipping.Line1 == "" || shipping.City == "" || shipping.PostalCode == "" || shipping.Country == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Shipping address is incomplete")
	}

	now := time.Now()
	return &Order{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              NewNumber(now),
		UserID:              userID,
		Email:               email,
		Items:               make([]Item, 0),
		TotalAmount:         decimal.Zero,
		Status:              StatusPending,
		Shipping:            shipping,
		PlacedAt:            now,
	}, nil
}

// AddItem appends a snapshot line to the order. Only allowed
// before the order is placed, i.e. while still assembling it
// during checkout.
func (o *Order) AddItem(productID, variantID uuid.UUID, productName, sku, variantLabel string, unitPrice decimal.Decimal, quantity int) error {
	if o.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot add items to a processed order")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if productName == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}

	now := time.Now()
	o.Items = append(o.Items, Item{
		ID:           uuid.New(),
		OrderID:      o.ID,
		TenantID:     o.TenantID,
		ProductID:    productID,
		VariantID:    variantID,
		ProductName:  productName,
		SKU:          sku,
		VariantLabel: variantLabel,
		UnitPrice:    unitPrice,
		Quantity:     quantity,
		Amount:       unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		CreatedAt:    now,
	})
	o.recalculateTotal()
	o.UpdatedAt = now

	return nil
}

// Place finalizes the order after all items are added
func (o *Order) Place() error {
	if len(o.Items) == 0 {
		return shared.ErrEmptyCart
	}

	o.AddDomainEvent(NewOrderPlacedEvent(o))

	return nil
}

// MarkProcessing moves the order into fulfillment
func (o *Order) MarkProcessing() error {
	return o.transition(StatusProcessing)
}

// MarkShipped records that the order left the warehouse
func (o *Order) MarkShipped() error {
	if err := o.transition(StatusShipped); err != nil {
		return err
	}

	now := time.Now()
	o.ShippedAt = &now

	return nil
}

// MarkDelivered records that the order reached the customer
func (o *Order) MarkDelivered() error {
	if err := o.transition(StatusDelivered); err != nil {
		return err
	}

	now := time.Now()
	o.DeliveredAt = &now

	return nil
}

// Cancel cancels the order. Stock restoration is the caller's
// responsibility; the event carries the lines for it.
func (o *Order) Cancel(reason string) error {
	if err := o.transition(StatusCancelled); err != nil {
		return err
	}

	now := time.Now()
	o.CancelledAt = &now
	o.CancelReason = reason

	o.AddDomainEvent(NewOrderCancelledEvent(o, reason))

	return nil
}

func (o *Order) transition(target Status) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot change order status from %s to %s", o.Status, target))
	}

	oldStatus := o.Status
	o.Status = target
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, oldStatus, target))

	return nil
}

func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Amount)
	}
	o.TotalAmount = total
}

// IsCancelled returns true if the order was cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == StatusCancelled
}

// IsTerminal returns true if the order reached a final status
func (o *Order) IsTerminal() bool {
	return o.Status == StatusDelivered || o.Status == StatusCancelled
}

// ItemCount returns the total number of units across all lines
func (o *Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}
