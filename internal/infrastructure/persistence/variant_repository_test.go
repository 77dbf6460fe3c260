package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormVariantRepository_FindByID(t *testing.T) {
	t.Run("finds existing variant", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormVariantRepository(db)

		variantID := uuid.New()
		tenantID := uuid.New()
		productID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "product_id", "sku", "color", "size", "price", "stock", "is_active"}).
			AddRow(variantID, tenantID, productID, "TEE-RED-M", "Red", "M", decimal.NewFromFloat(19.99), 10, true)

		mock.ExpectQuery(`SELECT \* FROM "product_variants" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, variantID, 1).
			WillReturnRows(rows)

		v, err := repo.FindByID(context.Background(), tenantID, variantID)

		require.NoError(t, err)
		assert.Equal(t, "TEE-RED-M", v.SKU)
		assert.Equal(t, 10, v.Stock)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormVariantRepository(db)

		tenantID := uuid.New()
		variantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "product_variants" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, variantID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		v, err := repo.FindByID(context.Background(), tenantID, variantID)

		assert.Nil(t, v)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormVariantRepository_FindByIDForUpdate(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormVariantRepository(db)

	variantID := uuid.New()
	tenantID := uuid.New()
	productID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "tenant_id", "product_id", "sku", "price", "stock", "is_active"}).
		AddRow(variantID, tenantID, productID, "TEE-RED-M", decimal.NewFromFloat(19.99), 3, true)

	mock.ExpectQuery(`SELECT \* FROM "product_variants" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .* FOR UPDATE`).
		WithArgs(tenantID, variantID, 1).
		WillReturnRows(rows)

	v, err := repo.FindByIDForUpdate(context.Background(), tenantID, variantID)

	require.NoError(t, err)
	assert.Equal(t, 3, v.Stock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormVariantRepository_FindBySKU(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormVariantRepository(db)

	variantID := uuid.New()
	tenantID := uuid.New()
	productID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "tenant_id", "product_id", "sku", "price", "stock", "is_active"}).
		AddRow(variantID, tenantID, productID, "TEE-RED-M", decimal.NewFromFloat(19.99), 10, true)

	mock.ExpectQuery(`SELECT \* FROM "product_variants" WHERE tenant_id = \$1 AND sku = \$2 ORDER BY .* LIMIT .*`).
		WithArgs(tenantID, "TEE-RED-M", 1).
		WillReturnRows(rows)

	// lowercase input is normalized before hitting the database
	v, err := repo.FindBySKU(context.Background(), tenantID, "tee-red-m")

	require.NoError(t, err)
	assert.Equal(t, variantID, v.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormReviewRepository_AverageRating(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormReviewRepository(db)

	tenantID := uuid.New()
	productID := uuid.New()

	mock.ExpectQuery(`SELECT COALESCE\(AVG\(rating\), 0\) AS avg, COUNT\(\*\) AS count FROM "reviews" WHERE tenant_id = \$1 AND product_id = \$2`).
		WithArgs(tenantID, productID).
		WillReturnRows(sqlmock.NewRows([]string{"avg", "count"}).AddRow(4.5, 2))

	avg, count, err := repo.AverageRating(context.Background(), tenantID, productID)

	require.NoError(t, err)
	assert.InDelta(t, 4.5, avg, 0.001)
	assert.Equal(t, int64(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
