package tenant

import (
	"github.com/storefront/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeTenant = "Tenant"

// Event type constants
const (
	EventTypeTenantCreated       = "TenantCreated"
	EventTypeTenantUpdated       = "TenantUpdated"
	EventTypeTenantStatusChanged = "TenantStatusChanged"
)

// TenantCreatedEvent is published when a new store is created
type TenantCreatedEvent struct {
	shared.BaseDomainEvent
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Status Status `json:"status"`
}

// NewTenantCreatedEvent creates a new TenantCreatedEvent
func NewTenantCreatedEvent(t *Tenant) *TenantCreatedEvent {
	return &TenantCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantCreated, AggregateTypeTenant, t.ID, t.ID),
		Name:            t.Name,
		Slug:            t.Slug,
		Status:          t.Status,
	}
}

// TenantUpdatedEvent is published when a store is updated
type TenantUpdatedEvent struct {
	shared.BaseDomainEvent
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email,omitempty"`
}

// NewTenantUpdatedEvent creates a new TenantUpdatedEvent
func NewTenantUpdatedEvent(t *Tenant) *TenantUpdatedEvent {
	return &TenantUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantUpdated, AggregateTypeTenant, t.ID, t.ID),
		Name:            t.Name,
		ContactEmail:    t.ContactEmail,
	}
}

// TenantStatusChangedEvent is published when a store's status changes
type TenantStatusChangedEvent struct {
	shared.BaseDomainEvent
	Slug      string `json:"slug"`
	OldStatus Status `json:"old_status"`
	NewStatus Status `json:"new_status"`
}

// NewTenantStatusChangedEvent creates a new TenantStatusChangedEvent
func NewTenantStatusChangedEvent(t *Tenant, oldStatus, newStatus Status) *TenantStatusChangedEvent {
	return &TenantStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantStatusChanged, AggregateTypeTenant, t.ID, t.ID),
		Slug:            t.Slug,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}
