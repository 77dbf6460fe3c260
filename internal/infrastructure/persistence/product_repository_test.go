package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&catalog.Product{}, &catalog.ProductVariant{}, &catalog.Review{}))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, tenantID uuid.UUID, name, slug string, active bool) *catalog.Product {
	t.Helper()

	p, err := catalog.NewProduct(tenantID, name, slug)
	require.NoError(t, err)
	if !active {
		require.NoError(t, p.Deactivate())
	}
	require.NoError(t, NewGormProductRepository(db).Save(context.Background(), p))
	return p
}

func seedVariant(t *testing.T, db *gorm.DB, p *catalog.Product, sku string, stock int, active bool) *catalog.ProductVariant {
	t.Helper()

	v, err := catalog.NewProductVariant(p.TenantID, p.ID, sku, decimal.NewFromInt(20))
	require.NoError(t, err)
	require.NoError(t, v.SetStock(stock))
	if !active {
		require.NoError(t, v.Deactivate())
	}
	require.NoError(t, NewGormVariantRepository(db).Save(context.Background(), v))
	return v
}

func TestGormProductRepository_FindActive(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	sellable := seedProduct(t, db, tenantID, "Blue Tee", "blue-tee", true)
	seedVariant(t, db, sellable, "TEE-BLUE-M", 5, true)

	soldOut := seedProduct(t, db, tenantID, "Red Tee", "red-tee", true)
	seedVariant(t, db, soldOut, "TEE-RED-M", 0, true)

	shelved := seedProduct(t, db, tenantID, "Green Tee", "green-tee", true)
	seedVariant(t, db, shelved, "TEE-GREEN-M", 5, false)

	hidden := seedProduct(t, db, tenantID, "Gray Tee", "gray-tee", false)
	seedVariant(t, db, hidden, "TEE-GRAY-M", 5, true)

	// active product with no variants at all
	seedProduct(t, db, tenantID, "Bare Tee", "bare-tee", true)

	t.Run("lists only products with an in-stock active variant", func(t *testing.T) {
		products, err := repo.FindActive(ctx, tenantID, nil, shared.DefaultFilter())
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, sellable.ID, products[0].ID)

		count, err := repo.CountActive(ctx, tenantID, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("restocking a sold-out variant brings the product back", func(t *testing.T) {
		v, err := NewGormVariantRepository(db).FindBySKU(ctx, tenantID, "TEE-RED-M")
		require.NoError(t, err)
		require.NoError(t, v.SetStock(3))
		require.NoError(t, NewGormVariantRepository(db).Save(ctx, v))

		count, err := repo.CountActive(ctx, tenantID, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("admin listing still shows everything", func(t *testing.T) {
		products, err := repo.FindAll(ctx, tenantID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, products, 5)
	})
}
