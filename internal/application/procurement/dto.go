package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/procurement"
)

// SupplierInput contains the input for creating or updating a supplier
type SupplierInput struct {
	Name         string `json:"name" binding:"required"`
	ContactName  string `json:"contact_name,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// SupplierResponse is the supplier projection returned to clients
type SupplierResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ContactName  string    `json:"contact_name,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	IsActive     bool      `json:"is_active"`
}

// ToSupplierResponse maps a supplier to its client projection
func ToSupplierResponse(s *procurement.Supplier) *SupplierResponse {
	return &SupplierResponse{
		ID:           s.ID,
		Name:         s.Name,
		ContactName:  s.ContactName,
		ContactEmail: s.ContactEmail,
		ContactPhone: s.ContactPhone,
		Notes:        s.Notes,
		IsActive:     s.IsActive,
	}
}

// CreatePurchaseOrderInput contains the input for opening a draft
type CreatePurchaseOrderInput struct {
	SupplierID uuid.UUID `json:"supplier_id" binding:"required"`
	Notes      string    `json:"notes,omitempty"`
}

// PurchaseOrderItemInput contains the input for adding a line
type PurchaseOrderItemInput struct {
	SKU      string          `json:"sku" binding:"required"`
	Quantity int             `json:"quantity" binding:"required"`
	UnitCost decimal.Decimal `json:"unit_cost" binding:"required"`
}

// ListFilter narrows supplier and purchase order listings
type ListFilter struct {
	Search   string
	Status   string
	Page     int
	PageSize int
}

// PurchaseOrderItemResponse is a purchase order line as returned to clients
type PurchaseOrderItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	VariantID uuid.UUID       `json:"variant_id"`
	SKU       string          `json:"sku"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Amount    decimal.Decimal `json:"amount"`
}

// PurchaseOrderResponse is the purchase order projection returned to clients
type PurchaseOrderResponse struct {
	ID           uuid.UUID                   `json:"id"`
	Number       string                      `json:"number"`
	SupplierID   uuid.UUID                   `json:"supplier_id"`
	SupplierName string                      `json:"supplier_name"`
	Items        []PurchaseOrderItemResponse `json:"items"`
	TotalCost    decimal.Decimal             `json:"total_cost"`
	Status       string                      `json:"status"`
	PlacedAt     *time.Time                  `json:"placed_at,omitempty"`
	ReceivedAt   *time.Time                  `json:"received_at,omitempty"`
	CancelledAt  *time.Time                  `json:"cancelled_at,omitempty"`
	Notes        string                      `json:"notes,omitempty"`
}

// ToPurchaseOrderResponse maps a purchase order to its client projection
func ToPurchaseOrderResponse(po *procurement.PurchaseOrder) *PurchaseOrderResponse {
	items := make([]PurchaseOrderItemResponse, len(po.Items))
	for i, item := range po.Items {
		items[i] = PurchaseOrderItemResponse{
			ID:        item.ID,
			VariantID: item.VariantID,
			SKU:       item.SKU,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
			Amount:    item.Amount,
		}
	}
	return &PurchaseOrderResponse{
		ID:           po.ID,
		Number:       po.Number,
		SupplierID:   po.SupplierID,
		SupplierName: po.SupplierName,
		Items:        items,
		TotalCost:    po.TotalCost,
		Status:       string(po.Status),
		PlacedAt:     po.PlacedAt,
		ReceivedAt:   po.ReceivedAt,
		CancelledAt:  po.CancelledAt,
		Notes:        po.Notes,
	}
}
