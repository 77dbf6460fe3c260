package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
)

// CreateCategoryRequest contains the input for creating a category
type CreateCategoryRequest struct {
	Name      string     `json:"name" binding:"required"`
	Slug      string     `json:"slug" binding:"required"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	SortOrder *int       `json:"sort_order,omitempty"`
}

// UpdateCategoryRequest contains the input for updating a category
type UpdateCategoryRequest struct {
	Name      string     `json:"name" binding:"required"`
	Slug      string     `json:"slug" binding:"required"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	SortOrder *int       `json:"sort_order,omitempty"`
}

// CategoryResponse is the category projection returned to clients
type CategoryResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	SortOrder int        `json:"sort_order"`
}

// ToCategoryResponse maps a category to its client projection
func ToCategoryResponse(c *catalog.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		ParentID:  c.ParentID,
		SortOrder: c.SortOrder,
	}
}

// CreateProductRequest contains the input for creating a product
type CreateProductRequest struct {
	Name        string     `json:"name" binding:"required"`
	Slug        string     `json:"slug" binding:"required"`
	Description string     `json:"description,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
}

// UpdateProductRequest contains the input for updating a product
type UpdateProductRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
}

// ProductListFilter narrows product listings
type ProductListFilter struct {
	Search     string
	CategoryID *uuid.UUID
	Page       int
	PageSize   int
	SortBy     string
	SortDesc   bool
}

// RatingSummary aggregates a product's reviews
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// ProductResponse is the full product projection with its variants
type ProductResponse struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Description string            `json:"description,omitempty"`
	CategoryID  *uuid.UUID        `json:"category_id,omitempty"`
	ImageURL    string            `json:"image_url,omitempty"`
	IsActive    bool              `json:"is_active"`
	Variants    []VariantResponse `json:"variants,omitempty"`
	Rating      *RatingSummary    `json:"rating,omitempty"`
}

// ProductSummary is the listing projection of a product
type ProductSummary struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Slug       string     `json:"slug"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	ImageURL   string     `json:"image_url,omitempty"`
	IsActive   bool       `json:"is_active"`
}

// ToProductResponse maps a product to its client projection
func ToProductResponse(p *catalog.Product, imageURL string) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		ImageURL:    imageURL,
		IsActive:    p.IsActive,
	}
}

// ToProductSummary maps a product to its listing projection
func ToProductSummary(p *catalog.Product, imageURL string) ProductSummary {
	return ProductSummary{
		ID:         p.ID,
		Name:       p.Name,
		Slug:       p.Slug,
		CategoryID: p.CategoryID,
		ImageURL:   imageURL,
		IsActive:   p.IsActive,
	}
}

// CreateVariantRequest contains the input for creating a variant
type CreateVariantRequest struct {
	SKU   string          `json:"sku" binding:"required"`
	Color string          `json:"color,omitempty"`
	Size  string          `json:"size,omitempty"`
	Price decimal.Decimal `json:"price" binding:"required"`
	Stock int             `json:"stock"`
}

// UpdateVariantRequest contains the input for updating a variant
type UpdateVariantRequest struct {
	Color     string           `json:"color,omitempty"`
	Size      string           `json:"size,omitempty"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	SalePrice *decimal.Decimal `json:"sale_price,omitempty"`
	Stock     *int             `json:"stock,omitempty"`
}

// VariantResponse is the variant projection returned to clients
type VariantResponse struct {
	ID             uuid.UUID        `json:"id"`
	ProductID      uuid.UUID        `json:"product_id"`
	SKU            string           `json:"sku"`
	Color          string           `json:"color,omitempty"`
	Size           string           `json:"size,omitempty"`
	Label          string           `json:"label"`
	Price          decimal.Decimal  `json:"price"`
	SalePrice      *decimal.Decimal `json:"sale_price,omitempty"`
	EffectivePrice decimal.Decimal  `json:"effective_price"`
	OnSale         bool             `json:"on_sale"`
	Stock          int              `json:"stock"`
	IsActive       bool             `json:"is_active"`
}

// ToVariantResponse maps a variant to its client projection
func ToVariantResponse(v *catalog.ProductVariant) VariantResponse {
	return VariantResponse{
		ID:             v.ID,
		ProductID:      v.ProductID,
		SKU:            v.SKU,
		Color:          v.Color,
		Size:           v.Size,
		Label:          v.Label(),
		Price:          v.Price,
		SalePrice:      v.SalePrice,
		EffectivePrice: v.EffectivePrice(),
		OnSale:         v.OnSale(),
		Stock:          v.Stock,
		IsActive:       v.IsActive,
	}
}

// ReviewInput contains the input for leaving a review
type ReviewInput struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment,omitempty"`
}

// ReviewResponse is the review projection returned to clients
type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
}

// ToReviewResponse maps a review to its client projection
func ToReviewResponse(r *catalog.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
	}
}
