package tenant

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Repository defines the interface for store persistence
type Repository interface {
	// FindByID finds a store by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// FindBySlug finds a store by its unique slug
	FindBySlug(ctx context.Context, slug string) (*Tenant, error)

	// FindByHostname resolves a request hostname to a store
	FindByHostname(ctx context.Context, hostname string) (*Tenant, error)

	// FindAll finds all stores matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Tenant, error)

	// Save creates or updates a store
	Save(ctx context.Context, t *Tenant) error

	// Delete deletes a store
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts stores matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsBySlug checks if a store with the given slug exists
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}

// DomainRepository defines the interface for hostname mapping persistence
type DomainRepository interface {
	// FindByHostname finds a hostname mapping
	FindByHostname(ctx context.Context, hostname string) (*StoreDomain, error)

	// FindByTenant lists all hostnames of a store
	FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]StoreDomain, error)

	// Save creates or updates a hostname mapping
	Save(ctx context.Context, d *StoreDomain) error

	// Delete deletes a hostname mapping
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByHostname checks if a hostname is already mapped
	ExistsByHostname(ctx context.Context, hostname string) (bool, error)
}
