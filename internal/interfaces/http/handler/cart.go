package handler

import (
	"github.com/gin-gonic/gin"
	cartapp "github.com/storefront/backend/internal/application/cart"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// CartHandler handles the session cart endpoints. Carts are keyed by
// the session cookie; no account is required.
type CartHandler struct {
	BaseHandler
	cartService *cartapp.Service
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.Service) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get returns the current session's cart
func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.cartService.Get(c.Request.Context(), middleware.GetTenantID(c), middleware.GetCartSessionID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// AddItem puts a variant in the cart, accumulating quantity when the
// line already exists
func (h *CartHandler) AddItem(c *gin.Context) {
	var req cartapp.AddItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), middleware.GetTenantID(c), middleware.GetCartSessionID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// UpdateItem sets a line's quantity
func (h *CartHandler) UpdateItem(c *gin.Context) {
	variantID, err := parseIDParam(c, "variantId")
	if err != nil {
		h.BadRequest(c, "Invalid variant ID")
		return
	}

	var req cartapp.UpdateItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	cart, err := h.cartService.UpdateItem(c.Request.Context(), middleware.GetTenantID(c), middleware.GetCartSessionID(c), variantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// RemoveItem removes a line from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	variantID, err := parseIDParam(c, "variantId")
	if err != nil {
		h.BadRequest(c, "Invalid variant ID")
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), middleware.GetTenantID(c), middleware.GetCartSessionID(c), variantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cartService.Clear(c.Request.Context(), middleware.GetTenantID(c), middleware.GetCartSessionID(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.Get)
		cart.POST("/items", h.AddItem)
		cart.PUT("/items/:variantId", h.UpdateItem)
		cart.DELETE("/items/:variantId", h.RemoveItem)
		cart.DELETE("", h.Clear)
	}
}
