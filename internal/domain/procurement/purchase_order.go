package procurement

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft     PurchaseOrderStatus = "draft"
	PurchaseOrderStatusPlaced    PurchaseOrderStatus = "placed"
	PurchaseOrderStatusReceived  PurchaseOrderStatus = "received"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "cancelled"
)

// IsValid checks if the status is a known purchase order status
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusPlaced, PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can move to the target status
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	switch s {
	case PurchaseOrderStatusDraft:
		return target == PurchaseOrderStatusPlaced || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusPlaced:
		return target == PurchaseOrderStatusReceived || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled:
		return false // Terminal states
	}
	return false
}

// PurchaseOrderItem is a line of inventory being bought. UnitCost
// is the store's cost basis, used by the profit report.
type PurchaseOrderItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	TenantID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	VariantID       uuid.UUID       `gorm:"type:uuid;not null"`
	SKU             string          `gorm:"type:varchar(50);not null"`
	Quantity        int             `gorm:"not null"`
	UnitCost        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// PurchaseOrder is an inbound stock order against a supplier
type PurchaseOrder struct {
	shared.TenantAggregateRoot
	Number       string              `gorm:"type:varchar(30);not null;uniqueIndex:idx_po_tenant_number,priority:2"`
	SupplierID   uuid.UUID           `gorm:"type:uuid;not null;index"`
	SupplierName string              `gorm:"type:varchar(200);not null"`
	Items        []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID"`
	TotalCost    decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	Status       PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	PlacedAt     *time.Time
	ReceivedAt   *time.Time
	CancelledAt  *time.Time
	Notes        string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrderNumber generates a human-readable PO number
func NewPurchaseOrderNumber(at time.Time) string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("PO-%s-%s", at.Format("20060102"), suffix)
}

// NewPurchaseOrder creates a draft purchase order against a supplier
func NewPurchaseOrder(tenantID, supplierID uuid.UUID, supplierName string) (*PurchaseOrder, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}

	return &PurchaseOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              NewPurchaseOrderNumber(time.Now()),
		SupplierID:          supplierID,
		SupplierName:        supplierName,
		Items:               make([]PurchaseOrderItem, 0),
		TotalCost:           decimal.Zero,
		Status:              PurchaseOrderStatusDraft,
	}, nil
}

// AddItem adds an inventory line. Only allowed in draft status.
func (po *PurchaseOrder) AddItem(variantID uuid.UUID, sku string, quantity int, unitCost decimal.Decimal) error {
	if po.Status != PurchaseOrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-draft purchase order")
	}
	if variantID == uuid.Nil {
		return shared.NewDomainError("INVALID_VARIANT", "Variant ID cannot be empty")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	for _, item := range po.Items {
		if item.VariantID == variantID {
			return shared.NewDomainError("DUPLICATE_VARIANT", "Variant already in the purchase order")
		}
	}

	now := time.Now()
	po.Items = append(po.Items, PurchaseOrderItem{
		ID:              uuid.New(),
		PurchaseOrderID: po.ID,
		TenantID:        po.TenantID,
		VariantID:       variantID,
		SKU:             sku,
		Quantity:        quantity,
		UnitCost:        unitCost,
		Amount:          unitCost.Mul(decimal.NewFromInt(int64(quantity))),
		CreatedAt:       now,
	})
	po.recalculateTotal()
	po.UpdatedAt = now

	return nil
}

// RemoveItem removes a line. Only allowed in draft status.
func (po *PurchaseOrder) RemoveItem(itemID uuid.UUID) error {
	if po.Status != PurchaseOrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove items from a non-draft purchase order")
	}

	for i := range po.Items {
		if po.Items[i].ID == itemID {
			po.Items = append(po.Items[:i], po.Items[i+1:]...)
			po.recalculateTotal()
			po.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.ErrNotFound
}

// Place sends the order to the supplier
func (po *PurchaseOrder) Place() error {
	if len(po.Items) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Purchase order has no items")
	}
	if err := po.transition(PurchaseOrderStatusPlaced); err != nil {
		return err
	}

	now := time.Now()
	po.PlacedAt = &now

	return nil
}

// Receive records delivery of the goods. The caller restocks the
// variants with the line quantities.
func (po *PurchaseOrder) Receive() error {
	if err := po.transition(PurchaseOrderStatusReceived); err != nil {
		return err
	}

	now := time.Now()
	po.ReceivedAt = &now

	return nil
}

// Cancel cancels the purchase order
func (po *PurchaseOrder) Cancel() error {
	if err := po.transition(PurchaseOrderStatusCancelled); err != nil {
		return err
	}

	now := time.Now()
	po.CancelledAt = &now

	return nil
}

// SetNotes sets free-form notes on the order
func (po *PurchaseOrder) SetNotes(notes string) {
	po.Notes = notes
	po.UpdatedAt = time.Now()
}

func (po *PurchaseOrder) transition(target PurchaseOrderStatus) error {
	if !po.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot change purchase order status from %s to %s", po.Status, target))
	}

	po.Status = target
	po.UpdatedAt = time.Now()

	return nil
}

func (po *PurchaseOrder) recalculateTotal() {
	total := decimal.Zero
	for _, item := range po.Items {
		total = total.Add(item.Amount)
	}
	po.TotalCost = total
}
