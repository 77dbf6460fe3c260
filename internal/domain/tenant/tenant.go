package tenant

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Status represents the lifecycle status of a store
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

// Tenant is a single store in the multi-store platform.
// All catalog, order, and user data hangs off a tenant.
type Tenant struct {
	shared.BaseAggregateRoot
	Name         string `gorm:"type:varchar(200);not null"`
	Slug         string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Status       Status `gorm:"type:varchar(20);not null;default:'active'"`
	ContactEmail string `gorm:"type:varchar(200)"`
	Currency     string `gorm:"type:varchar(3);not null;default:'USD'"`
	LogoKey      string `gorm:"type:varchar(500)"`
	Notes        string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Tenant) TableName() string {
	return "tenants"
}

// NewTenant creates a new store with required fields
func NewTenant(name, slug string) (*Tenant, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	slug = strings.ToLower(strings.TrimSpace(slug))
	if err := validateSlug(slug); err != nil {
		return nil, err
	}

	t := &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug,
		Status:            StatusActive,
		Currency:          "USD",
	}

	t.AddDomainEvent(NewTenantCreatedEvent(t))

	return t, nil
}

// Update updates the store's basic information
func (t *Tenant) Update(name, contactEmail string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if contactEmail != "" && len(contactEmail) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Contact email cannot exceed 200 characters")
	}

	t.Name = name
	t.ContactEmail = contactEmail
	t.UpdatedAt = time.Now()

	t.AddDomainEvent(NewTenantUpdatedEvent(t))

	return nil
}

// SetCurrency sets the store's display currency
func (t *Tenant) SetCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return shared.NewDomainError("INVALID_CURRENCY", "Currency must be a 3-letter ISO code")
	}

	t.Currency = currency
	t.UpdatedAt = time.Now()

	return nil
}

// SetLogoKey sets the storage key of the store's logo image
func (t *Tenant) SetLogoKey(key string) error {
	if len(key) > 500 {
		return shared.NewDomainError("INVALID_LOGO_KEY", "Logo key cannot exceed 500 characters")
	}

	t.LogoKey = key
	t.UpdatedAt = time.Now()

	return nil
}

// Activate activates the store
func (t *Tenant) Activate() error {
	if t.Status == StatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Store is already active")
	}

	oldStatus := t.Status
	t.Status = StatusActive
	t.UpdatedAt = time.Now()

	t.AddDomainEvent(NewTenantStatusChangedEvent(t, oldStatus, StatusActive))

	return nil
}

// Deactivate deactivates the store
func (t *Tenant) Deactivate() error {
	if t.Status == StatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Store is already inactive")
	}

	oldStatus := t.Status
	t.Status = StatusInactive
	t.UpdatedAt = time.Now()

	t.AddDomainEvent(NewTenantStatusChangedEvent(t, oldStatus, StatusInactive))

	return nil
}

// Suspend suspends the store
func (t *Tenant) Suspend() error {
	if t.Status == StatusSuspended {
		return shared.NewDomainError("ALREADY_SUSPENDED", "Store is already suspended")
	}

	oldStatus := t.Status
	t.Status = StatusSuspended
	t.UpdatedAt = time.Now()

	t.AddDomainEvent(NewTenantStatusChangedEvent(t, oldStatus, StatusSuspended))

	return nil
}

// IsActive returns true if the store is active
func (t *Tenant) IsActive() bool {
	return t.Status == StatusActive
}

// IsSuspended returns true if the store is suspended
func (t *Tenant) IsSuspended() bool {
	return t.Status == StatusSuspended
}

// TenantID returns the store's ID
func (t *Tenant) TenantID() uuid.UUID {
	return t.ID
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Store name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Store name cannot exceed 200 characters")
	}
	return nil
}

func validateSlug(slug string) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Store slug cannot be empty")
	}
	if len(slug) > 100 {
		return shared.NewDomainError("INVALID_SLUG", "Store slug cannot exceed 100 characters")
	}
	for _, r := range slug {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return shared.NewDomainError("INVALID_SLUG", "Store slug can only contain lowercase letters, numbers, and hyphens")
		}
	}
	return nil
}
