package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// ReviewHandler handles product review endpoints
type ReviewHandler struct {
	BaseHandler
	reviewService  *catalogapp.ReviewService
	productService *catalogapp.ProductService
	requireAuth    gin.HandlerFunc
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService *catalogapp.ReviewService, productService *catalogapp.ProductService, requireAuth gin.HandlerFunc) *ReviewHandler {
	return &ReviewHandler{
		reviewService:  reviewService,
		productService: productService,
		requireAuth:    requireAuth,
	}
}

// ReviewListResponse bundles a product's reviews with its rating
type ReviewListResponse struct {
	Reviews []catalogapp.ReviewResponse `json:"reviews"`
	Rating  *catalogapp.RatingSummary   `json:"rating,omitempty"`
}

// List returns a visible product's reviews
func (h *ReviewHandler) List(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	product, err := h.productService.GetBySlug(c.Request.Context(), tenantID, c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	reviews, rating, err := h.reviewService.List(c.Request.Context(), tenantID, product.ID, shared.DefaultFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ReviewListResponse{Reviews: reviews, Rating: rating})
}

// Submit leaves a review on a product. A shopper's second review of
// the same product replaces the first.
func (h *ReviewHandler) Submit(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	product, err := h.productService.GetBySlug(c.Request.Context(), tenantID, c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req catalogapp.ReviewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	review, err := h.reviewService.Submit(c.Request.Context(), tenantID, product.ID, middleware.GetUserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, review)
}

// Delete removes a review. Shoppers may delete their own; staff may
// delete any.
func (h *ReviewHandler) Delete(c *gin.Context) {
	reviewID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid review ID")
		return
	}

	requesterID, isStaff := requesterIdentity(c)
	if err := h.reviewService.Delete(c.Request.Context(), middleware.GetTenantID(c), reviewID, requesterID, isStaff); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers review routes
func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products/:slug/reviews", h.List)
	rg.POST("/products/:slug/reviews", h.requireAuth, h.Submit)
	rg.DELETE("/reviews/:id", h.requireAuth, h.Delete)
}
