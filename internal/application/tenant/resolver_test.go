package tenant

import (
	"context"
	"testing"
	"time"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/tenant"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newResolverFixture(t *testing.T, cfg config.TenantConfig) (*Resolver, *MockTenantRepository, *MockDomainRepository) {
	t.Helper()
	tenants := new(MockTenantRepository)
	domains := new(MockDomainRepository)
	return NewResolver(tenants, domains, cfg, zap.NewNop()), tenants, domains
}

func TestResolverResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves mapped hostname", func(t *testing.T) {
		r, tenants, domains := newResolverFixture(t, config.TenantConfig{})
		store := newTestStore(t)
		mapping, err := tenant.NewStoreDomain(store.ID, "shop.acme.com", true)
		require.NoError(t, err)

		domains.On("FindByHostname", ctx, "shop.acme.com").Return(mapping, nil)
		tenants.On("FindByID", ctx, store.ID).Return(store, nil)

		resolved, err := r.Resolve(ctx, "Shop.Acme.com:8080")

		require.NoError(t, err)
		assert.Equal(t, store.ID, resolved.ID)
	})

	t.Run("falls back to default store", func(t *testing.T) {
		r, tenants, domains := newResolverFixture(t, config.TenantConfig{DefaultSlug: "acme"})
		store := newTestStore(t)

		domains.On("FindByHostname", ctx, "unknown.example.com").Return(nil, shared.ErrNotFound)
		tenants.On("FindBySlug", ctx, "acme").Return(store, nil)

		resolved, err := r.Resolve(ctx, "unknown.example.com")

		require.NoError(t, err)
		assert.Equal(t, "acme", resolved.Slug)
	})

	t.Run("rejects unmapped hostname without default", func(t *testing.T) {
		r, _, domains := newResolverFixture(t, config.TenantConfig{})

		domains.On("FindByHostname", ctx, "unknown.example.com").Return(nil, shared.ErrNotFound)

		_, err := r.Resolve(ctx, "unknown.example.com")

		assert.ErrorIs(t, err, shared.ErrTenantNotResolved)
	})

	t.Run("suspended store surfaces its own error", func(t *testing.T) {
		r, tenants, domains := newResolverFixture(t, config.TenantConfig{})
		store := newTestStore(t)
		require.NoError(t, store.Suspend())
		mapping, err := tenant.NewStoreDomain(store.ID, "shop.acme.com", true)
		require.NoError(t, err)

		domains.On("FindByHostname", ctx, "shop.acme.com").Return(mapping, nil)
		tenants.On("FindByID", ctx, store.ID).Return(store, nil)

		_, err = r.Resolve(ctx, "shop.acme.com")

		assert.ErrorIs(t, err, shared.ErrTenantSuspended)
		assert.NotErrorIs(t, err, shared.ErrTenantNotResolved)
	})

	t.Run("inactive store resolves as not found", func(t *testing.T) {
		r, tenants, domains := newResolverFixture(t, config.TenantConfig{})
		store := newTestStore(t)
		store.Status = tenant.StatusInactive
		mapping, err := tenant.NewStoreDomain(store.ID, "shop.acme.com", true)
		require.NoError(t, err)

		domains.On("FindByHostname", ctx, "shop.acme.com").Return(mapping, nil)
		tenants.On("FindByID", ctx, store.ID).Return(store, nil)

		_, err = r.Resolve(ctx, "shop.acme.com")

		assert.ErrorIs(t, err, shared.ErrTenantNotResolved)
	})

	t.Run("caches lookups when enabled", func(t *testing.T) {
		r, tenants, domains := newResolverFixture(t, config.TenantConfig{
			CacheEnabled: true,
			CacheTTL:     time.Minute,
		})
		store := newTestStore(t)
		mapping, err := tenant.NewStoreDomain(store.ID, "shop.acme.com", true)
		require.NoError(t, err)

		domains.On("FindByHostname", ctx, "shop.acme.com").Return(mapping, nil).Once()
		tenants.On("FindByID", ctx, store.ID).Return(store, nil).Once()

		_, err = r.Resolve(ctx, "shop.acme.com")
		require.NoError(t, err)
		resolved, err := r.Resolve(ctx, "shop.acme.com")
		require.NoError(t, err)

		assert.Equal(t, store.ID, resolved.ID)
		domains.AssertNumberOfCalls(t, "FindByHostname", 1)
	})

	t.Run("invalidate forces a fresh lookup", func(t *testing.T) {
		r, tenants, domains := newResolverFixture(t, config.TenantConfig{
			CacheEnabled: true,
			CacheTTL:     time.Minute,
		})
		store := newTestStore(t)
		mapping, err := tenant.NewStoreDomain(store.ID, "shop.acme.com", true)
		require.NoError(t, err)

		domains.On("FindByHostname", ctx, "shop.acme.com").Return(mapping, nil)
		tenants.On("FindByID", ctx, store.ID).Return(store, nil)

		_, err = r.Resolve(ctx, "shop.acme.com")
		require.NoError(t, err)
		r.Invalidate("shop.acme.com")
		_, err = r.Resolve(ctx, "shop.acme.com")
		require.NoError(t, err)

		domains.AssertNumberOfCalls(t, "FindByHostname", 2)
	})
}
