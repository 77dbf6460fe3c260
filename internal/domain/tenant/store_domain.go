package tenant

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// StoreDomain maps a request hostname to a store.
// A store can have several hostnames; exactly one is primary.
type StoreDomain struct {
	shared.BaseEntity
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Hostname  string    `gorm:"type:varchar(253);not null;uniqueIndex"`
	IsPrimary bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (StoreDomain) TableName() string {
	return "store_domains"
}

// NewStoreDomain creates a hostname mapping for a store
func NewStoreDomain(tenantID uuid.UUID, hostname string, isPrimary bool) (*StoreDomain, error) {
	hostname, err := NormalizeHostname(hostname)
	if err != nil {
		return nil, err
	}

	return &StoreDomain{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		Hostname:   hostname,
		IsPrimary:  isPrimary,
	}, nil
}

// MakePrimary marks this hostname as the store's primary domain
func (d *StoreDomain) MakePrimary() {
	d.IsPrimary = true
	d.UpdatedAt = time.Now()
}

// NormalizeHostname lowercases a hostname and strips any port suffix.
// Request hosts arrive as "shop.example.com:8080"; the mapping stores
// the bare hostname.
func NormalizeHostname(hostname string) (string, error) {
	hostname = strings.ToLower(strings.TrimSpace(hostname))
	if i := strings.LastIndex(hostname, ":"); i >= 0 && !strings.Contains(hostname, "]") {
		hostname = hostname[:i]
	}
	hostname = strings.TrimSuffix(hostname, ".")

	if hostname == "" {
		return "", shared.NewDomainError("INVALID_HOSTNAME", "Hostname cannot be empty")
	}
	if len(hostname) > 253 {
		return "", shared.NewDomainError("INVALID_HOSTNAME", "Hostname cannot exceed 253 characters")
	}
	for _, r := range hostname {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '.') {
			return "", shared.NewDomainError("INVALID_HOSTNAME", "Hostname contains invalid characters")
		}
	}
	return hostname, nil
}
