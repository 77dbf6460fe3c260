package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// newArrivalCount is how many recent products the home view shows
const newArrivalCount = 8

// HomeHandler serves the storefront landing view
type HomeHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
	productService  *catalogapp.ProductService
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(categoryService *catalogapp.CategoryService, productService *catalogapp.ProductService) *HomeHandler {
	return &HomeHandler{
		categoryService: categoryService,
		productService:  productService,
	}
}

// StoreInfo is the store header shown on the landing view
type StoreInfo struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Currency string `json:"currency"`
}

// HomeResponse aggregates everything the landing page needs in one call
type HomeResponse struct {
	Store       StoreInfo                     `json:"store"`
	Categories  []catalogapp.CategoryResponse `json:"categories"`
	NewArrivals []catalogapp.ProductSummary   `json:"new_arrivals"`
}

// Home returns the store header, category tree and newest products
func (h *HomeHandler) Home(c *gin.Context) {
	ctx := c.Request.Context()
	t := middleware.GetTenant(c)
	tenantID := middleware.GetTenantID(c)

	categories, err := h.categoryService.List(ctx, tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	arrivals, _, err := h.productService.ListActive(ctx, tenantID, catalogapp.ProductListFilter{
		PageSize: newArrivalCount,
		SortBy:   "created_at",
		SortDesc: true,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, HomeResponse{
		Store: StoreInfo{
			Name:     t.Name,
			Slug:     t.Slug,
			Currency: t.Currency,
		},
		Categories:  categories,
		NewArrivals: arrivals,
	})
}

// RegisterRoutes registers home routes
func (h *HomeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/home", h.Home)
}
