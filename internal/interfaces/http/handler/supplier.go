package handler

import (
	"github.com/gin-gonic/gin"
	procurementapp "github.com/storefront/backend/internal/application/procurement"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// SupplierHandler handles supplier management for staff
type SupplierHandler struct {
	BaseHandler
	supplierService *procurementapp.SupplierService
	requireAuth     gin.HandlerFunc
	requireStaff    gin.HandlerFunc
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(supplierService *procurementapp.SupplierService, requireAuth, requireStaff gin.HandlerFunc) *SupplierHandler {
	return &SupplierHandler{
		supplierService: supplierService,
		requireAuth:     requireAuth,
		requireStaff:    requireStaff,
	}
}

// Create registers a new supplier
func (h *SupplierHandler) Create(c *gin.Context) {
	var req procurementapp.SupplierInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	supplier, err := h.supplierService.Create(c.Request.Context(), middleware.GetTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, supplier)
}

// Update edits a supplier's contact details
func (h *SupplierHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	var req procurementapp.SupplierInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	supplier, err := h.supplierService.Update(c.Request.Context(), middleware.GetTenantID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// SetActive toggles whether a supplier can receive new purchase orders
func (h *SupplierHandler) SetActive(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	supplier, err := h.supplierService.SetActive(c.Request.Context(), middleware.GetTenantID(c), id, *req.Active)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// Get returns a single supplier
func (h *SupplierHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	supplier, err := h.supplierService.GetByID(c.Request.Context(), middleware.GetTenantID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// List returns the store's suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	filter := procurementListFilter(c)
	suppliers, total, err := h.supplierService.List(c.Request.Context(), middleware.GetTenantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, suppliers, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// Delete removes a supplier with no purchase orders on file
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	if err := h.supplierService.Delete(c.Request.Context(), middleware.GetTenantID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers supplier routes
func (h *SupplierHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin/suppliers", h.requireAuth, h.requireStaff)
	{
		admin.GET("", h.List)
		admin.POST("", h.Create)
		admin.GET("/:id", h.Get)
		admin.PUT("/:id", h.Update)
		admin.PUT("/:id/active", h.SetActive)
		admin.DELETE("/:id", h.Delete)
	}
}
