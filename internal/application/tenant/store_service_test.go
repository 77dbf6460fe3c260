package tenant

import (
	"context"
	"testing"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/tenant"
	"github.com/storefront/backend/internal/infrastructure/event"
	"github.com/storefront/backend/internal/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type storeServiceFixture struct {
	svc     *StoreService
	tenants *MockTenantRepository
	domains *MockDomainRepository
}

func newStoreServiceFixture() *storeServiceFixture {
	tenants := new(MockTenantRepository)
	domains := new(MockDomainRepository)
	svc := NewStoreService(
		tenants,
		domains,
		storage.NewInMemoryMediaStorage(),
		event.NewInMemoryEventBus(zap.NewNop()),
		zap.NewNop(),
	)
	return &storeServiceFixture{svc: svc, tenants: tenants, domains: domains}
}

func newTestStore(t *testing.T) *tenant.Tenant {
	t.Helper()
	store, err := tenant.NewTenant("Acme Outlet", "acme")
	require.NoError(t, err)
	store.ClearDomainEvents()
	return store
}

func TestStoreServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates store with initial hostname", func(t *testing.T) {
		f := newStoreServiceFixture()

		f.tenants.On("ExistsBySlug", ctx, "acme").Return(false, nil)
		f.tenants.On("Save", ctx, mock.AnythingOfType("*tenant.Tenant")).Return(nil)
		f.tenants.On("FindByID", ctx, mock.AnythingOfType("uuid.UUID")).Return(newTestStore(t), nil)
		f.domains.On("ExistsByHostname", ctx, "shop.acme.com").Return(false, nil)
		f.domains.On("FindByTenant", ctx, mock.AnythingOfType("uuid.UUID")).Return([]tenant.StoreDomain{}, nil)
		f.domains.On("Save", ctx, mock.AnythingOfType("*tenant.StoreDomain")).Return(nil)

		resp, err := f.svc.Create(ctx, CreateStoreInput{
			Name:         "Acme Outlet",
			Slug:         "acme",
			ContactEmail: "owner@acme.com",
			Currency:     "eur",
			Hostname:     "Shop.Acme.com",
		})

		require.NoError(t, err)
		assert.Equal(t, "acme", resp.Slug)
		assert.Equal(t, "EUR", resp.Currency)
		assert.Equal(t, "owner@acme.com", resp.ContactEmail)
		f.domains.AssertCalled(t, "Save", ctx, mock.MatchedBy(func(d *tenant.StoreDomain) bool {
			return d.Hostname == "shop.acme.com" && d.IsPrimary
		}))
	})

	t.Run("rejects duplicate slug", func(t *testing.T) {
		f := newStoreServiceFixture()

		f.tenants.On("ExistsBySlug", ctx, "acme").Return(true, nil)

		_, err := f.svc.Create(ctx, CreateStoreInput{Name: "Acme Outlet", Slug: "acme"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		f.tenants.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestStoreServiceSetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("suspends an active store", func(t *testing.T) {
		f := newStoreServiceFixture()
		store := newTestStore(t)

		f.tenants.On("FindByID", ctx, store.ID).Return(store, nil)
		f.tenants.On("Save", ctx, store).Return(nil)

		resp, err := f.svc.SetStatus(ctx, store.ID, "suspended")

		require.NoError(t, err)
		assert.Equal(t, "suspended", resp.Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		f := newStoreServiceFixture()
		store := newTestStore(t)

		f.tenants.On("FindByID", ctx, store.ID).Return(store, nil)

		_, err := f.svc.SetStatus(ctx, store.ID, "archived")

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATUS", domainErr.Code)
	})
}

func TestStoreServiceUploadLogo(t *testing.T) {
	ctx := context.Background()
	f := newStoreServiceFixture()
	store := newTestStore(t)

	f.tenants.On("FindByID", ctx, store.ID).Return(store, nil)
	f.tenants.On("Save", ctx, store).Return(nil)

	resp, err := f.svc.UploadLogo(ctx, store.ID, []byte("png-bytes"), "image/png")

	require.NoError(t, err)
	assert.Equal(t, "logos/"+store.ID.String(), store.LogoKey)
	assert.NotEmpty(t, resp.LogoURL)
}

func TestStoreServiceDomains(t *testing.T) {
	ctx := context.Background()

	t.Run("new primary demotes the old one", func(t *testing.T) {
		f := newStoreServiceFixture()
		store := newTestStore(t)
		oldPrimary, err := tenant.NewStoreDomain(store.ID, "old.acme.com", true)
		require.NoError(t, err)

		f.tenants.On("FindByID", ctx, store.ID).Return(store, nil)
		f.domains.On("ExistsByHostname", ctx, "new.acme.com").Return(false, nil)
		f.domains.On("FindByTenant", ctx, store.ID).Return([]tenant.StoreDomain{*oldPrimary}, nil)
		f.domains.On("Save", ctx, mock.AnythingOfType("*tenant.StoreDomain")).Return(nil)

		resp, err := f.svc.AddDomain(ctx, store.ID, AddDomainInput{Hostname: "new.acme.com", IsPrimary: true})

		require.NoError(t, err)
		assert.True(t, resp.IsPrimary)
		f.domains.AssertCalled(t, "Save", ctx, mock.MatchedBy(func(d *tenant.StoreDomain) bool {
			return d.Hostname == "old.acme.com" && !d.IsPrimary
		}))
	})

	t.Run("first hostname becomes primary even when not requested", func(t *testing.T) {
		f := newStoreServiceFixture()
		store := newTestStore(t)

		f.tenants.On("FindByID", ctx, store.ID).Return(store, nil)
		f.domains.On("ExistsByHostname", ctx, "shop.acme.com").Return(false, nil)
		f.domains.On("FindByTenant", ctx, store.ID).Return([]tenant.StoreDomain{}, nil)
		f.domains.On("Save", ctx, mock.AnythingOfType("*tenant.StoreDomain")).Return(nil)

		resp, err := f.svc.AddDomain(ctx, store.ID, AddDomainInput{Hostname: "shop.acme.com"})

		require.NoError(t, err)
		assert.True(t, resp.IsPrimary)
	})

	t.Run("rejects hostname mapped to another store", func(t *testing.T) {
		f := newStoreServiceFixture()
		store := newTestStore(t)

		f.tenants.On("FindByID", ctx, store.ID).Return(store, nil)
		f.domains.On("ExistsByHostname", ctx, "shop.acme.com").Return(true, nil)

		_, err := f.svc.AddDomain(ctx, store.ID, AddDomainInput{Hostname: "shop.acme.com"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "HOSTNAME_TAKEN", domainErr.Code)
	})

	t.Run("cannot remove the last hostname", func(t *testing.T) {
		f := newStoreServiceFixture()
		store := newTestStore(t)
		only, err := tenant.NewStoreDomain(store.ID, "shop.acme.com", true)
		require.NoError(t, err)

		f.domains.On("FindByTenant", ctx, store.ID).Return([]tenant.StoreDomain{*only}, nil)

		err = f.svc.RemoveDomain(ctx, store.ID, only.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "LAST_HOSTNAME", domainErr.Code)
		f.domains.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("removing the primary promotes another hostname", func(t *testing.T) {
		f := newStoreServiceFixture()
		store := newTestStore(t)
		primary, err := tenant.NewStoreDomain(store.ID, "shop.acme.com", true)
		require.NoError(t, err)
		secondary, err := tenant.NewStoreDomain(store.ID, "www.acme.com", false)
		require.NoError(t, err)

		f.domains.On("FindByTenant", ctx, store.ID).Return([]tenant.StoreDomain{*primary, *secondary}, nil)
		f.domains.On("Delete", ctx, primary.ID).Return(nil)
		f.domains.On("Save", ctx, mock.AnythingOfType("*tenant.StoreDomain")).Return(nil)

		require.NoError(t, f.svc.RemoveDomain(ctx, store.ID, primary.ID))

		f.domains.AssertCalled(t, "Save", ctx, mock.MatchedBy(func(d *tenant.StoreDomain) bool {
			return d.Hostname == "www.acme.com" && d.IsPrimary
		}))
	})
}
