package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/order"
)

// ShippingAddressInput is the destination of a checkout
type ShippingAddressInput struct {
	FullName   string `json:"full_name" binding:"required"`
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city" binding:"required"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country" binding:"required"`
	Phone      string `json:"phone,omitempty"`
}

// CheckoutInput contains the input for placing an order. Either a
// saved address ID or an inline shipping address is required.
type CheckoutInput struct {
	AddressID *uuid.UUID            `json:"address_id,omitempty"`
	Shipping  *ShippingAddressInput `json:"shipping,omitempty"`
}

// ListFilter narrows order listings
type ListFilter struct {
	Search   string
	Status   string
	Page     int
	PageSize int
}

// ItemResponse is an order line as returned to clients
type ItemResponse struct {
	ProductID    uuid.UUID       `json:"product_id"`
	VariantID    uuid.UUID       `json:"variant_id"`
	ProductName  string          `json:"product_name"`
	SKU          string          `json:"sku"`
	VariantLabel string          `json:"variant_label,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
	Amount       decimal.Decimal `json:"amount"`
}

// ShippingAddressResponse is the destination snapshot of an order
type ShippingAddressResponse struct {
	FullName   string `json:"full_name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

// Response is the order projection returned to clients
type Response struct {
	ID           uuid.UUID               `json:"id"`
	Number       string                  `json:"number"`
	UserID       uuid.UUID               `json:"user_id"`
	Email        string                  `json:"email"`
	Items        []ItemResponse          `json:"items"`
	TotalAmount  decimal.Decimal         `json:"total_amount"`
	Status       string                  `json:"status"`
	Shipping     ShippingAddressResponse `json:"shipping"`
	PlacedAt     time.Time               `json:"placed_at"`
	ShippedAt    *time.Time              `json:"shipped_at,omitempty"`
	DeliveredAt  *time.Time              `json:"delivered_at,omitempty"`
	CancelledAt  *time.Time              `json:"cancelled_at,omitempty"`
	CancelReason string                  `json:"cancel_reason,omitempty"`
}

// Summary is the order projection used in listings
type Summary struct {
	ID          uuid.UUID       `json:"id"`
	Number      string          `json:"number"`
	Email       string          `json:"email"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	ItemCount   int             `json:"item_count"`
	PlacedAt    time.Time       `json:"placed_at"`
}

// ToResponse maps an order to its client projection
func ToResponse(o *order.Order) *Response {
	items := make([]ItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = ItemResponse{
			ProductID:    item.ProductID,
			VariantID:    item.VariantID,
			ProductName:  item.ProductName,
			SKU:          item.SKU,
			VariantLabel: item.VariantLabel,
			UnitPrice:    item.UnitPrice,
			Quantity:     item.Quantity,
			Amount:       item.Amount,
		}
	}
	return &Response{
		ID:          o.ID,
		Number:      o.Number,
		UserID:      o.UserID,
		Email:       o.Email,
		Items:       items,
		TotalAmount: o.TotalAmount,
		Status:      o.Status.String(),
		Shipping: ShippingAddressResponse{
			FullName:   o.Shipping.FullName,
			Line1:      o.Shipping.Line1,
			Line2:      o.Shipping.Line2,
			City:       o.Shipping.City,
			Region:     o.Shipping.Region,
			PostalCode: o.Shipping.PostalCode,
			Country:    o.Shipping.Country,
			Phone:      o.Shipping.Phone,
		},
		PlacedAt:     o.PlacedAt,
		ShippedAt:    o.ShippedAt,
		DeliveredAt:  o.DeliveredAt,
		CancelledAt:  o.CancelledAt,
		CancelReason: o.CancelReason,
	}
}

// ToSummary maps an order to its listing projection
func ToSummary(o *order.Order) Summary {
	return Summary{
		ID:          o.ID,
		Number:      o.Number,
		Email:       o.Email,
		TotalAmount: o.TotalAmount,
		Status:      o.Status.String(),
		ItemCount:   o.ItemCount(),
		PlacedAt:    o.PlacedAt,
	}
}
