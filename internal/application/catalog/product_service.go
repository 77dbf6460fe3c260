package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService handles product and variant management and browsing
type ProductService struct {
	productRepo  catalog.ProductRepository
	variantRepo  catalog.VariantRepository
	reviewRepo   catalog.ReviewRepository
	categoryRepo catalog.CategoryRepository
	media        MediaStorage
	usage        VariantUsage
	eventBus     shared.EventBus
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	variantRepo catalog.VariantRepository,
	reviewRepo catalog.ReviewRepository,
	categoryRepo catalog.CategoryRepository,
	media MediaStorage,
	usage VariantUsage,
	eventBus shared.EventBus,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		variantRepo:  variantRepo,
		reviewRepo:   reviewRepo,
		categoryRepo: categoryRepo,
		media:        media,
		usage:        usage,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsBySlug(ctx, tenantID, req.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this slug already exists")
	}

	product, err := catalog.NewProduct(tenantID, req.Name, req.Slug)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := product.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, tenantID, *req.CategoryID); err != nil {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
		}
		product.SetCategory(req.CategoryID)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	return ToProductResponse(product, s.imageURL(ctx, product.ImageKey)), nil
}

// Update updates a product's details
func (s *ProductService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, tenantID, *req.CategoryID); err != nil {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
		}
	}
	product.SetCategory(req.CategoryID)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	return ToProductResponse(product, s.imageURL(ctx, product.ImageKey)), nil
}

// SetActive publishes or hides a product
func (s *ProductService) SetActive(ctx context.Context, tenantID, id uuid.UUID, active bool) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if active {
		err = product.Activate()
	} else {
		err = product.Deactivate()
	}
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	return ToProductResponse(product, s.imageURL(ctx, product.ImageKey)), nil
}

// UploadImage stores a product image and links it to the product
func (s *ProductService) UploadImage(ctx context.Context, tenantID, id uuid.UUID, data []byte, contentType string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("products/%s/%s", tenantID, id)
	if err := s.media.Upload(ctx, key, data, contentType); err != nil {
		return nil, err
	}
	if err := product.SetImageKey(key); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product, s.imageURL(ctx, product.ImageKey)), nil
}

// Delete removes a product, its variants, and its reviews
func (s *ProductService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return err
	}

	variants, err := s.variantRepo.FindByProduct(ctx, tenantID, id)
	if err != nil {
		return err
	}
	for i := range variants {
		inUse, err := s.usage.VariantInUse(ctx, tenantID, variants[i].ID)
		if err != nil {
			return err
		}
		if inUse {
			return shared.NewDomainError("PRODUCT_IN_USE", "Product has variants referenced by orders or purchase orders")
		}
	}

	if err := s.productRepo.Delete(ctx, tenantID, id); err != nil {
		return err
	}

	if product.ImageKey != "" {
		if err := s.media.Delete(ctx, product.ImageKey); err != nil {
			s.logger.Warn("failed to delete product image", zap.Error(err))
		}
	}

	product.AddDomainEvent(catalog.NewProductDeletedEvent(product))
	s.publishEvents(ctx, product)
	return nil
}

// GetByID retrieves a product with its variants and rating
func (s *ProductService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, product)
}

// GetBySlug retrieves an active product by slug for the storefront
func (s *ProductService) GetBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, tenantID, slug)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, shared.ErrNotFound
	}
	return s.assemble(ctx, product)
}

// ListActive lists active products for the storefront
func (s *ProductService) ListActive(ctx context.Context, tenantID uuid.UUID, filter ProductListFilter) ([]ProductSummary, int64, error) {
	domainFilter := toDomainFilter(filter)

	products, err := s.productRepo.FindActive(ctx, tenantID, filter.CategoryID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.CountActive(ctx, tenantID, filter.CategoryID)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]ProductSummary, len(products))
	for i := range products {
		summaries[i] = ToProductSummary(&products[i], s.imageURL(ctx, products[i].ImageKey))
	}
	return summaries, total, nil
}

// ListAll lists all products for store administration
func (s *ProductService) ListAll(ctx context.Context, tenantID uuid.UUID, filter ProductListFilter) ([]ProductSummary, int64, error) {
	domainFilter := toDomainFilter(filter)
	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}

	products, err := s.productRepo.FindAll(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]ProductSummary, len(products))
	for i := range products {
		summaries[i] = ToProductSummary(&products[i], s.imageURL(ctx, products[i].ImageKey))
	}
	return summaries, total, nil
}

// AddVariant adds a variant to a product
func (s *ProductService) AddVariant(ctx context.Context, tenantID, productID uuid.UUID, req CreateVariantRequest) (*VariantResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, tenantID, productID); err != nil {
		return nil, err
	}

	exists, err := s.variantRepo.ExistsBySKU(ctx, tenantID, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Variant with this SKU already exists")
	}

	variant, err := catalog.NewProductVariant(tenantID, productID, req.SKU, req.Price)
	if err != nil {
		return nil, err
	}
	if req.Color != "" || req.Size != "" {
		if err := variant.SetOptions(req.Color, req.Size); err != nil {
			return nil, err
		}
	}
	if req.Stock > 0 {
		if err := variant.SetStock(req.Stock); err != nil {
			return nil, err
		}
	}

	if err := s.variantRepo.Save(ctx, variant); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, variant)

	resp := ToVariantResponse(variant)
	return &resp, nil
}

// UpdateVariant updates a variant's options, pricing, and stock
func (s *ProductService) UpdateVariant(ctx context.Context, tenantID, variantID uuid.UUID, req UpdateVariantRequest) (*VariantResponse, error) {
	variant, err := s.variantRepo.FindByID(ctx, tenantID, variantID)
	if err != nil {
		return nil, err
	}

	if req.Color != "" || req.Size != "" {
		if err := variant.SetOptions(req.Color, req.Size); err != nil {
			return nil, err
		}
	}
	if req.Price != nil {
		if err := variant.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.SalePrice != nil {
		if req.SalePrice.IsZero() {
			variant.ClearSalePrice()
		} else if err := variant.SetSalePrice(*req.SalePrice); err != nil {
			return nil, err
		}
	}
	if req.Stock != nil {
		if err := variant.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}

	if err := s.variantRepo.Save(ctx, variant); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, variant)

	resp := ToVariantResponse(variant)
	return &resp, nil
}

// SetVariantActive publishes or hides a variant
func (s *ProductService) SetVariantActive(ctx context.Context, tenantID, variantID uuid.UUID, active bool) (*VariantResponse, error) {
	variant, err := s.variantRepo.FindByID(ctx, tenantID, variantID)
	if err != nil {
		return nil, err
	}

	if active {
		err = variant.Activate()
	} else {
		err = variant.Deactivate()
	}
	if err != nil {
		return nil, err
	}

	if err := s.variantRepo.Save(ctx, variant); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, variant)

	resp := ToVariantResponse(variant)
	return &resp, nil
}

// DeleteVariant removes a variant
func (s *ProductService) DeleteVariant(ctx context.Context, tenantID, variantID uuid.UUID) error {
	variant, err := s.variantRepo.FindByID(ctx, tenantID, variantID)
	if err != nil {
		return err
	}

	inUse, err := s.usage.VariantInUse(ctx, tenantID, variantID)
	if err != nil {
		return err
	}
	if inUse {
		return shared.NewDomainError("VARIANT_IN_USE", "Variant is referenced by orders or purchase orders")
	}

	if err := s.variantRepo.Delete(ctx, tenantID, variantID); err != nil {
		return err
	}

	variant.AddDomainEvent(catalog.NewVariantDeletedEvent(variant))
	s.publishEvents(ctx, variant)
	return nil
}

func (s *ProductService) assemble(ctx context.Context, product *catalog.Product) (*ProductResponse, error) {
	resp := ToProductResponse(product, s.imageURL(ctx, product.ImageKey))

	variants, err := s.variantRepo.FindByProduct(ctx, product.TenantID, product.ID)
	if err != nil {
		return nil, err
	}
	resp.Variants = make([]VariantResponse, len(variants))
	for i := range variants {
		resp.Variants[i] = ToVariantResponse(&variants[i])
	}

	avg, count, err := s.reviewRepo.AverageRating(ctx, product.TenantID, product.ID)
	if err != nil {
		return nil, err
	}
	resp.Rating = &RatingSummary{Average: avg, Count: count}

	return resp, nil
}

func (s *ProductService) imageURL(ctx context.Context, key string) string {
	if key == "" {
		return ""
	}
	url, err := s.media.PublicURL(ctx, key)
	if err != nil {
		s.logger.Warn("failed to resolve media URL", zap.String("key", key), zap.Error(err))
		return ""
	}
	return url
}

func (s *ProductService) publishEvents(ctx context.Context, root shared.AggregateRoot) {
	events := root.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish catalog events", zap.Error(err))
	}
	root.ClearDomainEvents()
}

func toDomainFilter(filter ProductListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	domainFilter.Filters = make(map[string]interface{})
	domainFilter.Search = filter.Search

	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}
	if filter.SortBy != "" {
		domainFilter.OrderBy = filter.SortBy
		if filter.SortDesc {
			domainFilter.OrderDir = "desc"
		} else {
			domainFilter.OrderDir = "asc"
		}
	}
	return domainFilter
}
