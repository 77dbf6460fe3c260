package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTenant(t *testing.T) {
	t.Run("creates store successfully", func(t *testing.T) {
		store, err := NewTenant("Acme Outfitters", "acme")

		require.NoError(t, err)
		assert.NotNil(t, store)
		assert.Equal(t, "Acme Outfitters", store.Name)
		assert.Equal(t, "acme", store.Slug)
		assert.Equal(t, StatusActive, store.Status)
		assert.Equal(t, "USD", store.Currency)
		assert.Len(t, store.GetDomainEvents(), 1)
	})

	t.Run("lowercases the slug", func(t *testing.T) {
		store, err := NewTenant("Acme Outfitters", "  ACME  ")

		require.NoError(t, err)
		assert.Equal(t, "acme", store.Slug)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		store, err := NewTenant("", "acme")

		assert.Error(t, err)
		assert.Nil(t, store)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with invalid slug characters", func(t *testing.T) {
		store, err := NewTenant("Acme Outfitters", "acme_store!")

		assert.Error(t, err)
		assert.Nil(t, store)
		assert.Contains(t, err.Error(), "can only contain")
	})
}

func TestTenantStatusTransitions(t *testing.T) {
	t.Run("suspend and reactivate", func(t *testing.T) {
		store, err := NewTenant("Acme Outfitters", "acme")
		require.NoError(t, err)

		require.NoError(t, store.Suspend())
		assert.Equal(t, StatusSuspended, store.Status)
		assert.True(t, store.IsSuspended())

		require.NoError(t, store.Activate())
		assert.True(t, store.IsActive())
	})

	t.Run("cannot activate an already active store", func(t *testing.T) {
		store, err := NewTenant("Acme Outfitters", "acme")
		require.NoError(t, err)

		err = store.Activate()
		assert.Error(t, err)
	})

	t.Run("deactivate is idempotent only once", func(t *testing.T) {
		store, err := NewTenant("Acme Outfitters", "acme")
		require.NoError(t, err)

		require.NoError(t, store.Deactivate())
		assert.Error(t, store.Deactivate())
	})
}

func TestTenantSetCurrency(t *testing.T) {
	store, err := NewTenant("Acme Outfitters", "acme")
	require.NoError(t, err)

	require.NoError(t, store.SetCurrency("eur"))
	assert.Equal(t, "EUR", store.Currency)

	assert.Error(t, store.SetCurrency("EURO"))
}

func TestNewStoreDomain(t *testing.T) {
	store, err := NewTenant("Acme Outfitters", "acme")
	require.NoError(t, err)

	t.Run("creates mapping with normalized hostname", func(t *testing.T) {
		d, err := NewStoreDomain(store.ID, "Shop.Acme.COM", true)

		require.NoError(t, err)
		assert.Equal(t, "shop.acme.com", d.Hostname)
		assert.True(t, d.IsPrimary)
		assert.Equal(t, store.ID, d.TenantID)
	})

	t.Run("strips port suffix", func(t *testing.T) {
		d, err := NewStoreDomain(store.ID, "shop.acme.com:8080", false)

		require.NoError(t, err)
		assert.Equal(t, "shop.acme.com", d.Hostname)
	})

	t.Run("fails with empty hostname", func(t *testing.T) {
		_, err := NewStoreDomain(store.ID, "", false)
		assert.Error(t, err)
	})
}

func TestNormalizeHostname(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"shop.acme.com", "shop.acme.com"},
		{"SHOP.ACME.COM", "shop.acme.com"},
		{"shop.acme.com:443", "shop.acme.com"},
		{"shop.acme.com.", "shop.acme.com"},
		{" localhost:8080 ", "localhost"},
	}

	for _, c := range cases {
		got, err := NormalizeHostname(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got)
	}

	_, err := NormalizeHostname("shop example.com")
	assert.Error(t, err)
}
