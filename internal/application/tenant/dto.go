package tenant

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/tenant"
)

// CreateStoreInput contains the input for registering a store
type CreateStoreInput struct {
	Name         string `json:"name" binding:"required"`
	Slug         string `json:"slug" binding:"required"`
	ContactEmail string `json:"contact_email,omitempty"`
	Currency     string `json:"currency,omitempty"`
	Hostname     string `json:"hostname,omitempty"`
}

// UpdateStoreInput contains the input for updating a store
type UpdateStoreInput struct {
	Name         string `json:"name" binding:"required"`
	ContactEmail string `json:"contact_email,omitempty"`
	Currency     string `json:"currency,omitempty"`
}

// AddDomainInput contains the input for mapping a hostname
type AddDomainInput struct {
	Hostname  string `json:"hostname" binding:"required"`
	IsPrimary bool   `json:"is_primary"`
}

// ListFilter narrows store listings
type ListFilter struct {
	Search   string
	Status   string
	Page     int
	PageSize int
}

// StoreResponse is the store projection returned to clients
type StoreResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Status       string    `json:"status"`
	ContactEmail string    `json:"contact_email,omitempty"`
	Currency     string    `json:"currency"`
	LogoURL      string    `json:"logo_url,omitempty"`
}

// DomainResponse is a hostname mapping as returned to clients
type DomainResponse struct {
	ID        uuid.UUID `json:"id"`
	Hostname  string    `json:"hostname"`
	IsPrimary bool      `json:"is_primary"`
}

// ToStoreResponse maps a store to its client projection
func ToStoreResponse(t *tenant.Tenant, logoURL string) *StoreResponse {
	return &StoreResponse{
		ID:           t.ID,
		Name:         t.Name,
		Slug:         t.Slug,
		Status:       string(t.Status),
		ContactEmail: t.ContactEmail,
		Currency:     t.Currency,
		LogoURL:      logoURL,
	}
}

// ToDomainResponse maps a hostname mapping to its client projection
func ToDomainResponse(d *tenant.StoreDomain) DomainResponse {
	return DomainResponse{
		ID:        d.ID,
		Hostname:  d.Hostname,
		IsPrimary: d.IsPrimary,
	}
}
