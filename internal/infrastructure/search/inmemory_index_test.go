package search

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument(tenantID uuid.UUID, name, sku, color, size string) search.VariantDocument {
	return search.VariantDocument{
		VariantID:   uuid.New(),
		ProductID:   uuid.New(),
		TenantID:    tenantID,
		ProductName: name,
		ProductSlug: "slug",
		SKU:         sku,
		Color:       color,
		Size:        size,
		Price:       decimal.NewFromFloat(19.99),
		IsActive:    true,
	}
}

func TestTokenize(t *testing.T) {
	t.Run("lowercases and splits on punctuation", func(t *testing.T) {
		assert.Equal(t, []string{"tee", "red"}, Tokenize("TEE-RED-M"))
	})

	t.Run("deduplicates tokens", func(t *testing.T) {
		assert.Equal(t, []string{"red", "shirt"}, Tokenize("Red red SHIRT"))
	})

	t.Run("drops single characters", func(t *testing.T) {
		assert.Equal(t, []string{"size"}, Tokenize("size M"))
	})

	t.Run("empty input yields no tokens", func(t *testing.T) {
		assert.Empty(t, Tokenize("  --  "))
	})
}

func TestInMemoryIndexSearch(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("matches on product name", func(t *testing.T) {
		idx := NewInMemoryIndex()
		doc := testDocument(tenantID, "Classic Cotton Tee", "TEE-RED-M", "Red", "Medium")
		require.NoError(t, idx.Index(ctx, doc))

		results, err := idx.Search(ctx, tenantID, "cotton", 10)

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, doc.VariantID, results[0].VariantID)
	})

	t.Run("all terms must match", func(t *testing.T) {
		idx := NewInMemoryIndex()
		require.NoError(t, idx.Index(ctx, testDocument(tenantID, "Classic Cotton Tee", "TEE-RED-M", "Red", "Medium")))
		require.NoError(t, idx.Index(ctx, testDocument(tenantID, "Classic Wool Sweater", "SWT-BLU-L", "Blue", "Large")))

		results, err := idx.Search(ctx, tenantID, "classic red", 10)

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Red", results[0].Color)
	})

	t.Run("inactive documents are hidden", func(t *testing.T) {
		idx := NewInMemoryIndex()
		doc := testDocument(tenantID, "Classic Cotton Tee", "TEE-RED-M", "Red", "Medium")
		doc.IsActive = false
		require.NoError(t, idx.Index(ctx, doc))

		results, err := idx.Search(ctx, tenantID, "cotton", 10)

		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("results are scoped per store", func(t *testing.T) {
		idx := NewInMemoryIndex()
		otherTenant := uuid.New()
		require.NoError(t, idx.Index(ctx, testDocument(tenantID, "Classic Cotton Tee", "TEE-RED-M", "Red", "Medium")))

		results, err := idx.Search(ctx, otherTenant, "cotton", 10)

		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("reindexing a variant replaces its document", func(t *testing.T) {
		idx := NewInMemoryIndex()
		doc := testDocument(tenantID, "Classic Cotton Tee", "TEE-RED-M", "Red", "Medium")
		require.NoError(t, idx.Index(ctx, doc))

		doc.ProductName = "Vintage Cotton Tee"
		require.NoError(t, idx.Index(ctx, doc))

		stale, err := idx.Search(ctx, tenantID, "classic", 10)
		require.NoError(t, err)
		assert.Empty(t, stale)

		fresh, err := idx.Search(ctx, tenantID, "vintage", 10)
		require.NoError(t, err)
		assert.Len(t, fresh, 1)
	})

	t.Run("delete by product removes all its variants", func(t *testing.T) {
		idx := NewInMemoryIndex()
		doc := testDocument(tenantID, "Classic Cotton Tee", "TEE-RED-M", "Red", "Medium")
		sibling := doc
		sibling.VariantID = uuid.New()
		sibling.SKU = "TEE-RED-L"
		sibling.Size = "Large"
		require.NoError(t, idx.Index(ctx, doc))
		require.NoError(t, idx.Index(ctx, sibling))

		require.NoError(t, idx.DeleteByProduct(ctx, tenantID, doc.ProductID))

		results, err := idx.Search(ctx, tenantID, "tee", 10)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("limit caps the result count", func(t *testing.T) {
		idx := NewInMemoryIndex()
		for range [5]struct{}{} {
			require.NoError(t, idx.Index(ctx, testDocument(tenantID, "Classic Cotton Tee", "TEE-RED-M", "Red", "Medium")))
		}

		results, err := idx.Search(ctx, tenantID, "cotton", 3)

		require.NoError(t, err)
		assert.Len(t, results, 3)
	})
}
