package tenant

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/tenant"
	"github.com/storefront/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

type cacheEntry struct {
	tenant    *tenant.Tenant
	expiresAt time.Time
}

// Resolver maps request hostnames to stores. Every storefront request
// goes through it, so lookups are cached in process for a short TTL.
type Resolver struct {
	tenantRepo tenant.Repository
	domainRepo tenant.DomainRepository
	cfg        config.TenantConfig
	logger     *zap.Logger

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

// NewResolver creates a new hostname resolver
func NewResolver(
	tenantRepo tenant.Repository,
	domainRepo tenant.DomainRepository,
	cfg config.TenantConfig,
	logger *zap.Logger,
) *Resolver {
	return &Resolver{
		tenantRepo: tenantRepo,
		domainRepo: domainRepo,
		cfg:        cfg,
		logger:     logger,
		cache:      make(map[string]cacheEntry),
	}
}

// Resolve returns the active store serving the given request hostname.
// Unmapped hostnames fall back to the configured default store; if no
// default is configured the request is rejected.
func (r *Resolver) Resolve(ctx context.Context, hostname string) (*tenant.Tenant, error) {
	normalized, err := tenant.NormalizeHostname(hostname)
	if err != nil {
		return nil, shared.ErrTenantNotResolved
	}

	if t, ok := r.fromCache(normalized); ok {
		return r.checkStatus(t)
	}

	t, err := r.lookup(ctx, normalized)
	if err != nil {
		return nil, err
	}

	r.store(normalized, t)
	return r.checkStatus(t)
}

// Invalidate drops a hostname from the cache. Called when domain
// mappings change so admin edits take effect without waiting out
// the TTL.
func (r *Resolver) Invalidate(hostname string) {
	normalized, err := tenant.NormalizeHostname(hostname)
	if err != nil {
		return
	}
	r.mu.Lock()
	delete(r.cache, normalized)
	r.mu.Unlock()
}

// InvalidateAll clears the whole resolution cache
func (r *Resolver) InvalidateAll() {
	r.mu.Lock()
	r.cache = make(map[string]cacheEntry)
	r.mu.Unlock()
}

func (r *Resolver) lookup(ctx context.Context, hostname string) (*tenant.Tenant, error) {
	mapping, err := r.domainRepo.FindByHostname(ctx, hostname)
	switch {
	case err == nil:
		return r.tenantRepo.FindByID(ctx, mapping.TenantID)
	case errors.Is(err, shared.ErrNotFound):
		if r.cfg.DefaultSlug == "" {
			return nil, shared.ErrTenantNotResolved
		}
		t, err := r.tenantRepo.FindBySlug(ctx, r.cfg.DefaultSlug)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				r.logger.Warn("default store not found",
					zap.String("slug", r.cfg.DefaultSlug),
				)
				return nil, shared.ErrTenantNotResolved
			}
			return nil, err
		}
		return t, nil
	default:
		return nil, err
	}
}

// checkStatus rejects stores that should not serve traffic. Suspended
// stores surface a distinct error so clients see a 403, not a 404.
func (r *Resolver) checkStatus(t *tenant.Tenant) (*tenant.Tenant, error) {
	switch t.Status {
	case tenant.StatusActive:
		return t, nil
	case tenant.StatusSuspended:
		return nil, shared.ErrTenantSuspended
	default:
		return nil, shared.ErrTenantNotResolved
	}
}

func (r *Resolver) fromCache(hostname string) (*tenant.Tenant, bool) {
	if !r.cfg.CacheEnabled {
		return nil, false
	}
	r.mu.RLock()
	entry, ok := r.cache[hostname]
	r.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.tenant, true
}

func (r *Resolver) store(hostname string, t *tenant.Tenant) {
	if !r.cfg.CacheEnabled {
		return
	}
	ttl := r.cfg.CacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	r.mu.Lock()
	r.cache[hostname] = cacheEntry{tenant: t, expiresAt: time.Now().Add(ttl)}
	r.mu.Unlock()
}
