package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/tenant"
	"gorm.io/gorm"
)

// GormTenantRepository implements tenant.Repository using GORM
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// FindByID finds a store by its ID
func (r *GormTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	var t tenant.Tenant
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindBySlug finds a store by its unique slug
func (r *GormTenantRepository) FindBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	var t tenant.Tenant
	if err := r.db.WithContext(ctx).
		Where("slug = ?", strings.ToLower(slug)).
		First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindByHostname resolves a request hostname to a store through the
// store_domains mapping table
func (r *GormTenantRepository) FindByHostname(ctx context.Context, hostname string) (*tenant.Tenant, error) {
	normalized, err := tenant.NormalizeHostname(hostname)
	if err != nil {
		return nil, shared.ErrTenantNotResolved
	}

	var t tenant.Tenant
	if err := r.db.WithContext(ctx).
		Joins("JOIN store_domains ON store_domains.tenant_id = tenants.id").
		Where("store_domains.hostname = ?", normalized).
		First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrTenantNotResolved
		}
		return nil, err
	}
	return &t, nil
}

// FindAll finds all stores matching the filter
func (r *GormTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tenant.Tenant, error) {
	var tenants []tenant.Tenant
	query := r.db.WithContext(ctx).Model(&tenant.Tenant{})
	query = r.applySearch(query, filter)
	query = applySort(query, filter, TenantSortFields, "created_at")
	query = applyPagination(query, filter)

	if err := query.Find(&tenants).Error; err != nil {
		return nil, err
	}
	return tenants, nil
}

// Save creates or updates a store
func (r *GormTenantRepository) Save(ctx context.Context, t *tenant.Tenant) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// Delete deletes a store
func (r *GormTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&tenant.Tenant{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts stores matching the filter
func (r *GormTenantRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&tenant.Tenant{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsBySlug checks if a store with the given slug exists
func (r *GormTenantRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&tenant.Tenant{}).
		Where("slug = ?", strings.ToLower(slug)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormTenantRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR slug ILIKE ?", pattern, pattern)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return query
}

// GormStoreDomainRepository implements tenant.DomainRepository using GORM
type GormStoreDomainRepository struct {
	db *gorm.DB
}

// NewGormStoreDomainRepository creates a new GormStoreDomainRepository
func NewGormStoreDomainRepository(db *gorm.DB) *GormStoreDomainRepository {
	return &GormStoreDomainRepository{db: db}
}

// FindByHostname finds a hostname mapping
func (r *GormStoreDomainRepository) FindByHostname(ctx context.Context, hostname string) (*tenant.StoreDomain, error) {
	normalized, err := tenant.NormalizeHostname(hostname)
	if err != nil {
		return nil, shared.ErrTenantNotResolved
	}

	var d tenant.StoreDomain
	if err := r.db.WithContext(ctx).
		Where("hostname = ?", normalized).
		First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrTenantNotResolved
		}
		return nil, err
	}
	return &d, nil
}

// FindByTenant lists all hostnames of a store
func (r *GormStoreDomainRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]tenant.StoreDomain, error) {
	var domains []tenant.StoreDomain
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("is_primary DESC, hostname ASC").
		Find(&domains).Error; err != nil {
		return nil, err
	}
	return domains, nil
}

// Save creates or updates a hostname mapping
func (r *GormStoreDomainRepository) Save(ctx context.Context, d *tenant.StoreDomain) error {
	return r.db.WithContext(ctx).Save(d).Error
}

// Delete deletes a hostname mapping
func (r *GormStoreDomainRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&tenant.StoreDomain{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByHostname checks if a hostname is already mapped
func (r *GormStoreDomainRepository) ExistsByHostname(ctx context.Context, hostname string) (bool, error) {
	normalized, err := tenant.NormalizeHostname(hostname)
	if err != nil {
		return false, err
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&tenant.StoreDomain{}).
		Where("hostname = ?", normalized).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ tenant.Repository = (*GormTenantRepository)(nil)
var _ tenant.DomainRepository = (*GormStoreDomainRepository)(nil)
