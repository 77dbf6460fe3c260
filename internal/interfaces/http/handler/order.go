package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderapp "github.com/storefront/backend/internal/application/order"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles checkout, shopper order history, and staff
// order management
type OrderHandler struct {
	BaseHandler
	checkoutService *orderapp.CheckoutService
	orderService    *orderapp.Service
	requireAuth     gin.HandlerFunc
	requireStaff    gin.HandlerFunc
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(
	checkoutService *orderapp.CheckoutService,
	orderService *orderapp.Service,
	requireAuth, requireStaff gin.HandlerFunc,
) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
		orderService:    orderService,
		requireAuth:     requireAuth,
		requireStaff:    requireStaff,
	}
}

// CancelOrderRequest carries the optional cancellation reason
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

func orderListFilter(c *gin.Context) orderapp.ListFilter {
	filter := orderapp.ListFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		filter.Page = page
	}
	if pageSize, err := strconv.Atoi(c.Query("page_size")); err == nil {
		filter.PageSize = pageSize
	}
	return filter
}

// Checkout converts the session cart into an order
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req orderapp.CheckoutInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.checkoutService.Checkout(
		c.Request.Context(),
		middleware.GetTenantID(c),
		middleware.GetUserID(c),
		middleware.GetCartSessionID(c),
		req,
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// List returns the shopper's own orders
func (h *OrderHandler) List(c *gin.Context) {
	filter := orderListFilter(c)
	orders, total, err := h.orderService.ListByUser(c.Request.Context(), middleware.GetTenantID(c), middleware.GetUserID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// Get returns a single order. Shoppers only see their own orders.
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	requesterID, isStaff := requesterIdentity(c)
	order, err := h.orderService.GetByID(c.Request.Context(), middleware.GetTenantID(c), id, requesterID, isStaff)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Cancel cancels an order and restores its stock. Shoppers may cancel
// their own orders while still pending; staff may cancel pending or
// processing orders.
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req CancelOrderRequest
	// Body is optional
	_ = c.ShouldBindJSON(&req)

	requesterID, isStaff := requesterIdentity(c)
	order, err := h.orderService.Cancel(c.Request.Context(), middleware.GetTenantID(c), id, requesterID, isStaff, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// ListAll returns every order on the store, optionally filtered by
// status
func (h *OrderHandler) ListAll(c *gin.Context) {
	filter := orderListFilter(c)
	orders, total, err := h.orderService.ListAll(c.Request.Context(), middleware.GetTenantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// MarkProcessing moves a pending order into fulfillment
func (h *OrderHandler) MarkProcessing(c *gin.Context) {
	h.advance(c, h.orderService.MarkProcessing)
}

// MarkShipped marks a processing order as shipped
func (h *OrderHandler) MarkShipped(c *gin.Context) {
	h.advance(c, h.orderService.MarkShipped)
}

// MarkDelivered marks a shipped order as delivered
func (h *OrderHandler) MarkDelivered(c *gin.Context) {
	h.advance(c, h.orderService.MarkDelivered)
}

func (h *OrderHandler) advance(c *gin.Context, fn func(ctx context.Context, tenantID, id uuid.UUID) (*orderapp.Response, error)) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := fn(c.Request.Context(), middleware.GetTenantID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/checkout", h.requireAuth, h.Checkout)

	orders := rg.Group("/orders", h.requireAuth)
	{
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.POST("/:id/cancel", h.Cancel)
	}

	admin := rg.Group("/admin/orders", h.requireAuth, h.requireStaff)
	{
		admin.GET("", h.ListAll)
		admin.GET("/:id", h.Get)
		admin.POST("/:id/processing", h.MarkProcessing)
		admin.POST("/:id/shipped", h.MarkShipped)
		admin.POST("/:id/delivered", h.MarkDelivered)
		admin.POST("/:id/cancel", h.Cancel)
	}
}
