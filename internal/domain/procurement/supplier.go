package procurement

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Supplier is a vendor the store buys inventory from
type Supplier struct {
	shared.TenantAggregateRoot
	Name         string `gorm:"type:varchar(200);not null"`
	ContactName  string `gorm:"type:varchar(100)"`
	ContactEmail string `gorm:"type:varchar(200)"`
	ContactPhone string `gorm:"type:varchar(50)"`
	Notes        string `gorm:"type:text"`
	IsActive     bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(tenantID uuid.UUID, name string) (*Supplier, error) {
	if err := validateSupplierName(name); err != nil {
		return nil, err
	}

	return &Supplier{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                strings.TrimSpace(name),
		IsActive:            true,
	}, nil
}

// Update updates the supplier's basic information
func (s *Supplier) Update(name, notes string) error {
	if err := validateSupplierName(name); err != nil {
		return err
	}

	s.Name = strings.TrimSpace(name)
	s.Notes = notes
	s.UpdatedAt = time.Now()

	return nil
}

// SetContact sets the supplier's contact information
func (s *Supplier) SetContact(contactName, email, phone string) error {
	if len(contactName) > 100 {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot exceed 100 characters")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}

	s.ContactName = strings.TrimSpace(contactName)
	s.ContactEmail = strings.TrimSpace(email)
	s.ContactPhone = strings.TrimSpace(phone)
	s.UpdatedAt = time.Now()

	return nil
}

// Activate re-enables the supplier
func (s *Supplier) Activate() error {
	if s.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Supplier is already active")
	}

	s.IsActive = true
	s.UpdatedAt = time.Now()

	return nil
}

// Deactivate disables the supplier; no new purchase orders can
// target it
func (s *Supplier) Deactivate() error {
	if !s.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Supplier is already inactive")
	}

	s.IsActive = false
	s.UpdatedAt = time.Now()

	return nil
}

func validateSupplierName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot exceed 200 characters")
	}
	return nil
}
