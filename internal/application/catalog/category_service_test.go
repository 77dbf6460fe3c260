package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestCategoryService() (*CategoryService, *MockCategoryRepository, *MockProductRepository) {
	categories := new(MockCategoryRepository)
	products := new(MockProductRepository)
	return NewCategoryService(categories, products), categories, products
}

func newTestCategory(t *testing.T, tenantID uuid.UUID, name, slug string) *catalog.Category {
	t.Helper()

	c, err := catalog.NewCategory(tenantID, name, slug)
	require.NoError(t, err)
	return c
}

func TestCategoryServiceDelete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("protects a category that still has products", func(t *testing.T) {
		svc, categories, products := newTestCategoryService()
		category := newTestCategory(t, tenantID, "Shirts", "shirts")

		products.On("Count", ctx, tenantID, mock.AnythingOfType("shared.Filter")).Return(int64(3), nil)

		err := svc.Delete(ctx, tenantID, category.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CATEGORY_IN_USE", domainErr.Code)
		categories.AssertNotCalled(t, "Delete", ctx, tenantID, category.ID)
	})

	t.Run("deletes an empty category and re-parents its children", func(t *testing.T) {
		svc, categories, products := newTestCategoryService()
		parent := newTestCategory(t, tenantID, "Apparel", "apparel")
		child := newTestCategory(t, tenantID, "Shirts", "shirts")
		require.NoError(t, child.SetParent(&parent.ID))

		products.On("Count", ctx, tenantID, mock.AnythingOfType("shared.Filter")).Return(int64(0), nil)
		categories.On("FindChildren", ctx, tenantID, parent.ID).Return([]catalog.Category{*child}, nil)
		categories.On("Save", ctx, mock.AnythingOfType("*catalog.Category")).Return(nil)
		categories.On("Delete", ctx, tenantID, parent.ID).Return(nil)

		require.NoError(t, svc.Delete(ctx, tenantID, parent.ID))

		categories.AssertCalled(t, "Delete", ctx, tenantID, parent.ID)
		saved := categories.Calls[1].Arguments.Get(1).(*catalog.Category)
		assert.Nil(t, saved.ParentID)
	})
}
