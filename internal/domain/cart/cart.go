package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// Item is a single cart line. The unit price is captured when the
// item is added so the cart total stays stable while the shopper
// browses, even if the catalog price changes underneath.
type Item struct {
	VariantID uuid.UUID       `json:"variant_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Subtotal returns quantity times unit price
func (i Item) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart holds a shopper's pending items. It is keyed by an anonymous
// session ID and scoped to a store; it lives in the cart store, not
// the database.
type Cart struct {
	SessionID string    `json:"session_id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates an empty cart for a session
func New(tenantID uuid.UUID, sessionID string) *Cart {
	return &Cart{
		SessionID: sessionID,
		TenantID:  tenantID,
		Items:     []Item{},
		UpdatedAt: time.Now(),
	}
}

// Add puts a variant in the cart. When override is true the quantity
// replaces the current one; otherwise it is added to it. The unit
// price is captured when the line is first created and kept on later
// calls, so catalog price changes do not reprice a pending cart.
func (c *Cart) Add(variantID uuid.UUID, unitPrice decimal.Decimal, quantity int, override bool) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	for i := range c.Items {
		if c.Items[i].VariantID == variantID {
			if override {
				c.Items[i].Quantity = quantity
			} else {
				c.Items[i].Quantity += quantity
			}
			c.UpdatedAt = time.Now()
			return nil
		}
	}

	c.Items = append(c.Items, Item{
		VariantID: variantID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	})
	c.UpdatedAt = time.Now()

	return nil
}

// Remove drops a variant from the cart. Removing a variant that is
// not in the cart is a no-op.
func (c *Cart) Remove(variantID uuid.UUID) {
	for i := range c.Items {
		if c.Items[i].VariantID == variantID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.UpdatedAt = time.Now()
			return
		}
	}
}

// Get returns the cart line for a variant, if present
func (c *Cart) Get(variantID uuid.UUID) (Item, bool) {
	for _, item := range c.Items {
		if item.VariantID == variantID {
			return item, true
		}
	}
	return Item{}, false
}

// Total returns the sum of all line subtotals
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Quantity returns the total number of units in the cart
func (c *Cart) Quantity() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// IsEmpty returns true if the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clear removes all items
func (c *Cart) Clear() {
	c.Items = []Item{}
	c.UpdatedAt = time.Now()
}
