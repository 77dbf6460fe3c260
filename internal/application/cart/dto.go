package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddItemInput contains the input for putting a variant in the cart
type AddItemInput struct {
	VariantID uuid.UUID `json:"variant_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
}

// UpdateItemInput contains the input for setting a line's quantity
type UpdateItemInput struct {
	Quantity int `json:"quantity" binding:"required"`
}

// LineResponse is a single cart line enriched with catalog data
type LineResponse struct {
	VariantID   uuid.UUID       `json:"variant_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	Label       string          `json:"label"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	InStock     bool            `json:"in_stock"`
}

// CartResponse is the cart projection returned to clients
type CartResponse struct {
	Items    []LineResponse  `json:"items"`
	Quantity int             `json:"quantity"`
	Total    decimal.Decimal `json:"total"`
}
