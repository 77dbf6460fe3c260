package handler

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// maxImageBytes caps uploaded product and logo images at 5MB
const maxImageBytes = 5 << 20

// ProductHandler handles product endpoints, both the public storefront
// views and staff catalog management
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
	requireAuth    gin.HandlerFunc
	requireStaff   gin.HandlerFunc
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService, requireAuth, requireStaff gin.HandlerFunc) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		requireAuth:    requireAuth,
		requireStaff:   requireStaff,
	}
}

// SetActiveRequest toggles visibility of a product or variant
type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func productListFilter(c *gin.Context) catalogapp.ProductListFilter {
	filter := catalogapp.ProductListFilter{
		Search:   c.Query("search"),
		SortBy:   c.Query("sort_by"),
		SortDesc: c.Query("sort_dir") == "desc",
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		filter.Page = page
	}
	if pageSize, err := strconv.Atoi(c.Query("page_size")); err == nil {
		filter.PageSize = pageSize
	}
	if categoryID, err := uuid.Parse(c.Query("category_id")); err == nil {
		filter.CategoryID = &categoryID
	}
	return filter
}

// List returns the store's visible products
func (h *ProductHandler) List(c *gin.Context) {
	filter := productListFilter(c)
	products, total, err := h.productService.ListActive(c.Request.Context(), middleware.GetTenantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, products, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// GetBySlug returns a visible product with its variants and rating
func (h *ProductHandler) GetBySlug(c *gin.Context) {
	product, err := h.productService.GetBySlug(c.Request.Context(), middleware.GetTenantID(c), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// ListAll returns every product including hidden ones
func (h *ProductHandler) ListAll(c *gin.Context) {
	filter := productListFilter(c)
	products, total, err := h.productService.ListAll(c.Request.Context(), middleware.GetTenantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, products, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// GetByID returns a product regardless of visibility
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), middleware.GetTenantID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Create creates a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), middleware.GetTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update updates a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), middleware.GetTenantID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// SetActive shows or hides a product on the storefront
func (h *ProductHandler) SetActive(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.productService.SetActive(c.Request.Context(), middleware.GetTenantID(c), id, *req.Active)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// UploadImage attaches an image to a product
func (h *ProductHandler) UploadImage(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	data, contentType, err := readImageUpload(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.productService.UploadImage(c.Request.Context(), middleware.GetTenantID(c), id, data, contentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete removes a product with its variants and reviews
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), middleware.GetTenantID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddVariant adds a purchasable variant to a product
func (h *ProductHandler) AddVariant(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.CreateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	variant, err := h.productService.AddVariant(c.Request.Context(), middleware.GetTenantID(c), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, variant)
}

// UpdateVariant updates a variant's options, pricing, or stock
func (h *ProductHandler) UpdateVariant(c *gin.Context) {
	variantID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid variant ID")
		return
	}

	var req catalogapp.UpdateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	variant, err := h.productService.UpdateVariant(c.Request.Context(), middleware.GetTenantID(c), variantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, variant)
}

// SetVariantActive shows or hides a variant
func (h *ProductHandler) SetVariantActive(c *gin.Context) {
	variantID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid variant ID")
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	variant, err := h.productService.SetVariantActive(c.Request.Context(), middleware.GetTenantID(c), variantID, *req.Active)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, variant)
}

// DeleteVariant removes a variant
func (h *ProductHandler) DeleteVariant(c *gin.Context) {
	variantID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid variant ID")
		return
	}

	if err := h.productService.DeleteVariant(c.Request.Context(), middleware.GetTenantID(c), variantID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// readImageUpload reads the "image" file from a multipart form
func readImageUpload(c *gin.Context) ([]byte, string, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		return nil, "", err
	}
	return data, fileHeader.Header.Get("Content-Type"), nil
}

func pageOrDefault(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

func pageSizeOrDefault(pageSize int) int {
	if pageSize <= 0 {
		return 20
	}
	return pageSize
}

// RegisterRoutes registers product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/:slug", h.GetBySlug)
	}

	admin := rg.Group("/admin", h.requireAuth, h.requireStaff)
	{
		adminProducts := admin.Group("/products")
		{
			adminProducts.GET("", h.ListAll)
			adminProducts.POST("", h.Create)
			adminProducts.GET("/:id", h.GetByID)
			adminProducts.PUT("/:id", h.Update)
			adminProducts.DELETE("/:id", h.Delete)
			adminProducts.PUT("/:id/active", h.SetActive)
			adminProducts.POST("/:id/image", h.UploadImage)
			adminProducts.POST("/:id/variants", h.AddVariant)
		}

		adminVariants := admin.Group("/variants")
		{
			adminVariants.PUT("/:id", h.UpdateVariant)
			adminVariants.DELETE("/:id", h.DeleteVariant)
			adminVariants.PUT("/:id/active", h.SetVariantActive)
		}
	}
}
