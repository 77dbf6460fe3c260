package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	tenantapp "github.com/storefront/backend/internal/application/tenant"
)

// StoreHandler handles platform-level store administration: store
// registration, status changes, and hostname mappings
type StoreHandler struct {
	BaseHandler
	storeService *tenantapp.StoreService
	resolver     *tenantapp.Resolver
	requireAuth  gin.HandlerFunc
	requireStaff gin.HandlerFunc
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(storeService *tenantapp.StoreService, resolver *tenantapp.Resolver, requireAuth, requireStaff gin.HandlerFunc) *StoreHandler {
	return &StoreHandler{
		storeService: storeService,
		resolver:     resolver,
		requireAuth:  requireAuth,
		requireStaff: requireStaff,
	}
}

// SetStatusRequest carries the target store status
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Create registers a new store
func (h *StoreHandler) Create(c *gin.Context) {
	var req tenantapp.CreateStoreInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	store, err := h.storeService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, store)
}

// List returns all stores on the platform
func (h *StoreHandler) List(c *gin.Context) {
	filter := tenantapp.ListFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		filter.Page = page
	}
	if pageSize, err := strconv.Atoi(c.Query("page_size")); err == nil {
		filter.PageSize = pageSize
	}

	stores, total, err := h.storeService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, stores, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// Get returns a single store
func (h *StoreHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	store, err := h.storeService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, store)
}

// Update edits a store's name and contact details
func (h *StoreHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	var req tenantapp.UpdateStoreInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	store, err := h.storeService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, store)
}

// SetStatus activates, deactivates, or suspends a store
func (h *StoreHandler) SetStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	store, err := h.storeService.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	// Cached hostname lookups carry the old status
	h.resolver.InvalidateAll()
	h.Success(c, store)
}

// UploadLogo stores a new logo image for the store
func (h *StoreHandler) UploadLogo(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	data, contentType, err := readImageUpload(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	store, err := h.storeService.UploadLogo(c.Request.Context(), id, data, contentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, store)
}

// ListDomains returns the store's hostname mappings
func (h *StoreHandler) ListDomains(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	domains, err := h.storeService.ListDomains(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, domains)
}

// AddDomain maps a hostname to the store
func (h *StoreHandler) AddDomain(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	var req tenantapp.AddDomainInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	domain, err := h.storeService.AddDomain(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.resolver.Invalidate(domain.Hostname)
	h.Created(c, domain)
}

// RemoveDomain unmaps a hostname from the store
func (h *StoreHandler) RemoveDomain(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}
	domainID, err := parseIDParam(c, "domainId")
	if err != nil {
		h.BadRequest(c, "Invalid domain ID")
		return
	}

	if err := h.storeService.RemoveDomain(c.Request.Context(), id, domainID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.resolver.InvalidateAll()
	h.NoContent(c)
}

// SetPrimaryDomain makes a hostname the store's primary hostname
func (h *StoreHandler) SetPrimaryDomain(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}
	domainID, err := parseIDParam(c, "domainId")
	if err != nil {
		h.BadRequest(c, "Invalid domain ID")
		return
	}

	if err := h.storeService.SetPrimaryDomain(c.Request.Context(), id, domainID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers store administration routes
func (h *StoreHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin/stores", h.requireAuth, h.requireStaff)
	{
		admin.GET("", h.List)
		admin.POST("", h.Create)
		admin.GET("/:id", h.Get)
		admin.PUT("/:id", h.Update)
		admin.PUT("/:id/status", h.SetStatus)
		admin.POST("/:id/logo", h.UploadLogo)
		admin.GET("/:id/domains", h.ListDomains)
		admin.POST("/:id/domains", h.AddDomain)
		admin.DELETE("/:id/domains/:domainId", h.RemoveDomain)
		admin.POST("/:id/domains/:domainId/primary", h.SetPrimaryDomain)
	}
}
