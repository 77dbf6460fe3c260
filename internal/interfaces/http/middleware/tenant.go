package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tenantapp "github.com/storefront/backend/internal/application/tenant"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/tenant"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Tenant context keys
const (
	TenantIDKey = "tenant_id"
	TenantKey   = "tenant"
)

// ResolveTenant maps the request hostname to a store and stores it in
// the context. Requests to hostnames that resolve to no active store
// are rejected.
func ResolveTenant(resolver *tenantapp.Resolver, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, err := resolver.Resolve(c.Request.Context(), c.Request.Host)
		if err != nil {
			if logger != nil {
				logger.Debug("store resolution failed",
					zap.String("host", c.Request.Host),
					zap.Error(err),
				)
			}
			var domainErr *shared.DomainError
			if errors.As(err, &domainErr) {
				c.AbortWithStatusJSON(dto.GetHTTPStatus(domainErr.Code),
					dto.NewErrorResponse(domainErr.Code, domainErr.Message))
				return
			}
			c.AbortWithStatusJSON(http.StatusNotFound, dto.NewErrorResponse(
				shared.ErrTenantNotResolved.Code,
				shared.ErrTenantNotResolved.Message,
			))
			return
		}

		c.Set(TenantIDKey, t.ID)
		c.Set(TenantKey, t)
		c.Next()
	}
}

// GetTenantID retrieves the resolved store ID from the gin context
func GetTenantID(c *gin.Context) uuid.UUID {
	if tenantID, exists := c.Get(TenantIDKey); exists {
		if id, ok := tenantID.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// GetTenant retrieves the resolved store from the gin context
func GetTenant(c *gin.Context) *tenant.Tenant {
	if t, exists := c.Get(TenantKey); exists {
		if store, ok := t.(*tenant.Tenant); ok {
			return store
		}
	}
	return nil
}
