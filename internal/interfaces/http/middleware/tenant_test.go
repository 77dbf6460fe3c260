package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tenantapp "github.com/storefront/backend/internal/application/tenant"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/tenant"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubTenantRepo struct {
	tenant.Repository
	store *tenant.Tenant
}

func (s *stubTenantRepo) FindByID(context.Context, uuid.UUID) (*tenant.Tenant, error) {
	if s.store == nil {
		return nil, shared.ErrNotFound
	}
	return s.store, nil
}

type stubDomainRepo struct {
	tenant.DomainRepository
	mapping *tenant.StoreDomain
}

func (s *stubDomainRepo) FindByHostname(context.Context, string) (*tenant.StoreDomain, error) {
	if s.mapping == nil {
		return nil, shared.ErrNotFound
	}
	return s.mapping, nil
}

func tenantTestRouter(t *testing.T, store *tenant.Tenant) *gin.Engine {
	t.Helper()
	var mapping *tenant.StoreDomain
	if store != nil {
		m, err := tenant.NewStoreDomain(store.ID, "shop.acme.com", true)
		require.NoError(t, err)
		mapping = m
	}
	resolver := tenantapp.NewResolver(
		&stubTenantRepo{store: store},
		&stubDomainRepo{mapping: mapping},
		config.TenantConfig{},
		zap.NewNop(),
	)

	router := gin.New()
	router.Use(ResolveTenant(resolver, zap.NewNop()))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, GetTenantID(c).String())
	})
	return router
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

func TestResolveTenant(t *testing.T) {
	t.Run("resolved store is placed in the context", func(t *testing.T) {
		store, err := tenant.NewTenant("Acme", "acme")
		require.NoError(t, err)
		router := tenantTestRouter(t, store)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Host = "shop.acme.com"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, store.ID.String(), rec.Body.String())
	})

	t.Run("unknown hostname responds 404", func(t *testing.T) {
		router := tenantTestRouter(t, nil)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Host = "nobody.example.com"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "TENANT_NOT_RESOLVED", decodeErrorCode(t, rec))
	})

	t.Run("suspended store responds 403", func(t *testing.T) {
		store, err := tenant.NewTenant("Acme", "acme")
		require.NoError(t, err)
		require.NoError(t, store.Suspend())
		router := tenantTestRouter(t, store)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Host = "shop.acme.com"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "TENANT_SUSPENDED", decodeErrorCode(t, rec))
	})
}
