package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	procurementapp "github.com/storefront/backend/internal/application/procurement"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// PurchaseOrderHandler handles restocking purchase orders for staff
type PurchaseOrderHandler struct {
	BaseHandler
	poService    *procurementapp.PurchaseOrderService
	requireAuth  gin.HandlerFunc
	requireStaff gin.HandlerFunc
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler
func NewPurchaseOrderHandler(poService *procurementapp.PurchaseOrderService, requireAuth, requireStaff gin.HandlerFunc) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{
		poService:    poService,
		requireAuth:  requireAuth,
		requireStaff: requireStaff,
	}
}

func procurementListFilter(c *gin.Context) procurementapp.ListFilter {
	filter := procurementapp.ListFilter{
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

// Create opens a draft purchase order against a supplier
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req procurementapp.CreatePurchaseOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	po, err := h.poService.Create(c.Request.Context(), middleware.GetTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, po)
}

// AddItem adds a line to a draft purchase order
func (h *PurchaseOrderHandler) AddItem(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid purchase order ID")
		return
	}

	var req procurementapp.PurchaseOrderItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	po, err := h.poService.AddItem(c.Request.Context(), middleware.GetTenantID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, po)
}

// RemoveItem removes a line from a draft purchase order
func (h *PurchaseOrderHandler) RemoveItem(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid purchase order ID")
		return
	}
	itemID, err := parseIDParam(c, "itemId")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	po, err := h.poService.RemoveItem(c.Request.Context(), middleware.GetTenantID(c), id, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, po)
}

// Place submits a draft purchase order to its supplier
func (h *PurchaseOrderHandler) Place(c *gin.Context) {
	h.transition(c, h.poService.Place)
}

// Receive marks a placed purchase order as received and restocks its
// variants
func (h *PurchaseOrderHandler) Receive(c *gin.Context) {
	h.transition(c, h.poService.Receive)
}

// Cancel cancels a purchase order that has not been received
func (h *PurchaseOrderHandler) Cancel(c *gin.Context) {
	h.transition(c, h.poService.Cancel)
}

func (h *PurchaseOrderHandler) transition(c *gin.Context, fn func(ctx context.Context, tenantID, id uuid.UUID) (*procurementapp.PurchaseOrderResponse, error)) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid purchase order ID")
		return
	}

	po, err := fn(c.Request.Context(), middleware.GetTenantID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, po)
}

// Get returns a single purchase order
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid purchase order ID")
		return
	}

	po, err := h.poService.GetByID(c.Request.Context(), middleware.GetTenantID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, po)
}

// List returns the store's purchase orders, optionally filtered by
// status
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	filter := procurementListFilter(c)
	orders, total, err := h.poService.List(c.Request.Context(), middleware.GetTenantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// RegisterRoutes registers purchase order routes
func (h *PurchaseOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin/purchase-orders", h.requireAuth, h.requireStaff)
	{
		admin.GET("", h.List)
		admin.POST("", h.Create)
		admin.GET("/:id", h.Get)
		admin.POST("/:id/items", h.AddItem)
		admin.DELETE("/:id/items/:itemId", h.RemoveItem)
		admin.POST("/:id/place", h.Place)
		admin.POST("/:id/receive", h.Receive)
		admin.POST("/:id/cancel", h.Cancel)
	}
}
