package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/event"
	"github.com/storefront/backend/internal/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type productServiceMocks struct {
	products   *MockProductRepository
	variants   *MockVariantRepository
	reviews    *MockReviewRepository
	categories *MockCategoryRepository
	usage      *MockVariantUsage
}

func newTestProductService() (*ProductService, *productServiceMocks) {
	mocks := &productServiceMocks{
		products:   new(MockProductRepository),
		variants:   new(MockVariantRepository),
		reviews:    new(MockReviewRepository),
		categories: new(MockCategoryRepository),
		usage:      new(MockVariantUsage),
	}
	svc := NewProductService(
		mocks.products,
		mocks.variants,
		mocks.reviews,
		mocks.categories,
		storage.NewInMemoryMediaStorage(),
		mocks.usage,
		event.NewInMemoryEventBus(zap.NewNop()),
		zap.NewNop(),
	)
	return svc, mocks
}

func TestProductServiceCreate(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("creates product", func(t *testing.T) {
		svc, mocks := newTestProductService()
		mocks.products.On("ExistsBySlug", ctx, tenantID, "blue-tee").Return(false, nil)
		mocks.products.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := svc.Create(ctx, tenantID, CreateProductRequest{
			Name:        "Blue Tee",
			Slug:        "blue-tee",
			Description: "A plain blue t-shirt",
		})

		require.NoError(t, err)
		assert.Equal(t, "Blue Tee", resp.Name)
		assert.Equal(t, "blue-tee", resp.Slug)
		assert.True(t, resp.IsActive)
		mocks.products.AssertExpectations(t)
	})

	t.Run("rejects duplicate slug", func(t *testing.T) {
		svc, mocks := newTestProductService()
		mocks.products.On("ExistsBySlug", ctx, tenantID, "blue-tee").Return(true, nil)

		_, err := svc.Create(ctx, tenantID, CreateProductRequest{Name: "Blue Tee", Slug: "blue-tee"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		mocks.products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		svc, mocks := newTestProductService()
		categoryID := uuid.New()
		mocks.products.On("ExistsBySlug", ctx, tenantID, "blue-tee").Return(false, nil)
		mocks.categories.On("FindByID", ctx, tenantID, categoryID).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, tenantID, CreateProductRequest{
			Name:       "Blue Tee",
			Slug:       "blue-tee",
			CategoryID: &categoryID,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CATEGORY", domainErr.Code)
	})
}

func TestProductServiceGetBySlug(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("returns product with variants and rating", func(t *testing.T) {
		svc, mocks := newTestProductService()
		product, err := catalog.NewProduct(tenantID, "Blue Tee", "blue-tee")
		require.NoError(t, err)
		variant, err := catalog.NewProductVariant(tenantID, product.ID, "TEE-BLUE-M", decimal.NewFromFloat(19.99))
		require.NoError(t, err)

		mocks.products.On("FindBySlug", ctx, tenantID, "blue-tee").Return(product, nil)
		mocks.variants.On("FindByProduct", ctx, tenantID, product.ID).Return([]catalog.ProductVariant{*variant}, nil)
		mocks.reviews.On("AverageRating", ctx, tenantID, product.ID).Return(4.5, int64(12), nil)

		resp, err := svc.GetBySlug(ctx, tenantID, "blue-tee")

		require.NoError(t, err)
		require.Len(t, resp.Variants, 1)
		assert.Equal(t, "TEE-BLUE-M", resp.Variants[0].SKU)
		require.NotNil(t, resp.Rating)
		assert.Equal(t, 4.5, resp.Rating.Average)
		assert.Equal(t, int64(12), resp.Rating.Count)
	})

	t.Run("hides inactive products", func(t *testing.T) {
		svc, mocks := newTestProductService()
		product, err := catalog.NewProduct(tenantID, "Blue Tee", "blue-tee")
		require.NoError(t, err)
		require.NoError(t, product.Deactivate())

		mocks.products.On("FindBySlug", ctx, tenantID, "blue-tee").Return(product, nil)

		_, err = svc.GetBySlug(ctx, tenantID, "blue-tee")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductServiceVariants(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("adds variant", func(t *testing.T) {
		svc, mocks := newTestProductService()
		product, err := catalog.NewProduct(tenantID, "Blue Tee", "blue-tee")
		require.NoError(t, err)

		mocks.products.On("FindByID", ctx, tenantID, product.ID).Return(product, nil)
		mocks.variants.On("ExistsBySKU", ctx, tenantID, "TEE-BLUE-M").Return(false, nil)
		mocks.variants.On("Save", ctx, mock.AnythingOfType("*catalog.ProductVariant")).Return(nil)

		resp, err := svc.AddVariant(ctx, tenantID, product.ID, CreateVariantRequest{
			SKU:   "TEE-BLUE-M",
			Color: "blue",
			Size:  "M",
			Price: decimal.NewFromFloat(19.99),
			Stock: 10,
		})

		require.NoError(t, err)
		assert.Equal(t, "TEE-BLUE-M", resp.SKU)
		assert.Equal(t, 10, resp.Stock)
		assert.True(t, decimal.NewFromFloat(19.99).Equal(resp.Price))
		mocks.variants.AssertExpectations(t)
	})

	t.Run("rejects duplicate SKU", func(t *testing.T) {
		svc, mocks := newTestProductService()
		product, err := catalog.NewProduct(tenantID, "Blue Tee", "blue-tee")
		require.NoError(t, err)

		mocks.products.On("FindByID", ctx, tenantID, product.ID).Return(product, nil)
		mocks.variants.On("ExistsBySKU", ctx, tenantID, "TEE-BLUE-M").Return(true, nil)

		_, err = svc.AddVariant(ctx, tenantID, product.ID, CreateVariantRequest{
			SKU:   "TEE-BLUE-M",
			Price: decimal.NewFromFloat(19.99),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("updates sale price and stock", func(t *testing.T) {
		svc, mocks := newTestProductService()
		variant, err := catalog.NewProductVariant(tenantID, uuid.New(), "TEE-BLUE-M", decimal.NewFromFloat(19.99))
		require.NoError(t, err)

		mocks.variants.On("FindByID", ctx, tenantID, variant.ID).Return(variant, nil)
		mocks.variants.On("Save", ctx, variant).Return(nil)

		salePrice := decimal.NewFromFloat(14.99)
		stock := 5
		resp, err := svc.UpdateVariant(ctx, tenantID, variant.ID, UpdateVariantRequest{
			SalePrice: &salePrice,
			Stock:     &stock,
		})

		require.NoError(t, err)
		require.NotNil(t, resp.SalePrice)
		assert.True(t, salePrice.Equal(*resp.SalePrice))
		assert.True(t, resp.OnSale)
		assert.True(t, salePrice.Equal(resp.EffectivePrice))
		assert.Equal(t, 5, resp.Stock)
	})

	t.Run("zero sale price clears the sale", func(t *testing.T) {
		svc, mocks := newTestProductService()
		variant, err := catalog.NewProductVariant(tenantID, uuid.New(), "TEE-BLUE-M", decimal.NewFromFloat(19.99))
		require.NoError(t, err)
		require.NoError(t, variant.SetSalePrice(decimal.NewFromFloat(14.99)))

		mocks.variants.On("FindByID", ctx, tenantID, variant.ID).Return(variant, nil)
		mocks.variants.On("Save", ctx, variant).Return(nil)

		zero := decimal.Zero
		resp, err := svc.UpdateVariant(ctx, tenantID, variant.ID, UpdateVariantRequest{SalePrice: &zero})

		require.NoError(t, err)
		assert.Nil(t, resp.SalePrice)
		assert.False(t, resp.OnSale)
	})
}

func TestProductServiceDeleteVariant(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("deletes an unreferenced variant", func(t *testing.T) {
		svc, mocks := newTestProductService()
		variant, err := catalog.NewProductVariant(tenantID, uuid.New(), "TEE-BLUE-M", decimal.NewFromInt(20))
		require.NoError(t, err)

		mocks.variants.On("FindByID", ctx, tenantID, variant.ID).Return(variant, nil)
		mocks.usage.On("VariantInUse", ctx, tenantID, variant.ID).Return(false, nil)
		mocks.variants.On("Delete", ctx, tenantID, variant.ID).Return(nil)

		require.NoError(t, svc.DeleteVariant(ctx, tenantID, variant.ID))
		mocks.variants.AssertCalled(t, "Delete", ctx, tenantID, variant.ID)
	})

	t.Run("protects a variant referenced by orders", func(t *testing.T) {
		svc, mocks := newTestProductService()
		variant, err := catalog.NewProductVariant(tenantID, uuid.New(), "TEE-BLUE-M", decimal.NewFromInt(20))
		require.NoError(t, err)

		mocks.variants.On("FindByID", ctx, tenantID, variant.ID).Return(variant, nil)
		mocks.usage.On("VariantInUse", ctx, tenantID, variant.ID).Return(true, nil)

		err = svc.DeleteVariant(ctx, tenantID, variant.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VARIANT_IN_USE", domainErr.Code)
		mocks.variants.AssertNotCalled(t, "Delete", ctx, tenantID, variant.ID)
	})
}

func TestProductServiceDelete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("protects a product whose variant was sold", func(t *testing.T) {
		svc, mocks := newTestProductService()
		product, err := catalog.NewProduct(tenantID, "Blue Tee", "blue-tee")
		require.NoError(t, err)
		variant, err := catalog.NewProductVariant(tenantID, product.ID, "TEE-BLUE-M", decimal.NewFromInt(20))
		require.NoError(t, err)

		mocks.products.On("FindByID", ctx, tenantID, product.ID).Return(product, nil)
		mocks.variants.On("FindByProduct", ctx, tenantID, product.ID).Return([]catalog.ProductVariant{*variant}, nil)
		mocks.usage.On("VariantInUse", ctx, tenantID, variant.ID).Return(true, nil)

		err = svc.Delete(ctx, tenantID, product.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PRODUCT_IN_USE", domainErr.Code)
		mocks.products.AssertNotCalled(t, "Delete", ctx, tenantID, product.ID)
	})

	t.Run("deletes a product with no sales history", func(t *testing.T) {
		svc, mocks := newTestProductService()
		product, err := catalog.NewProduct(tenantID, "Blue Tee", "blue-tee")
		require.NoError(t, err)

		mocks.products.On("FindByID", ctx, tenantID, product.ID).Return(product, nil)
		mocks.variants.On("FindByProduct", ctx, tenantID, product.ID).Return([]catalog.ProductVariant{}, nil)
		mocks.products.On("Delete", ctx, tenantID, product.ID).Return(nil)

		require.NoError(t, svc.Delete(ctx, tenantID, product.ID))
	})
}
