package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Address is a saved shipping address in a user's address book
type Address struct {
	shared.BaseEntity
	TenantID   uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	FullName   string    `gorm:"type:varchar(200);not null"`
	Line1      string    `gorm:"type:varchar(200);not null"`
	Line2      string    `gorm:"type:varchar(200)"`
	City       string    `gorm:"type:varchar(100);not null"`
	Region     string    `gorm:"type:varchar(100)"`
	PostalCode string    `gorm:"type:varchar(20);not null"`
	Country    string    `gorm:"type:varchar(2);not null"`
	Phone      string    `gorm:"type:varchar(50)"`
	IsDefault  bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Address) TableName() string {
	return "addresses"
}

// NewAddress creates a new address book entry
func NewAddress(tenantID, userID uuid.UUID, fullName, line1, city, postalCode, country string) (*Address, error) {
	if strings.TrimSpace(fullName) == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Recipient name cannot be empty")
	}
	if strings.TrimSpace(line1) == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address line cannot be empty")
	}
	if strings.TrimSpace(city) == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "City cannot be empty")
	}
	if strings.TrimSpace(postalCode) == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Postal code cannot be empty")
	}
	country = strings.ToUpper(strings.TrimSpace(country))
	if len(country) != 2 {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Country must be a 2-letter ISO code")
	}

	return &Address{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		UserID:     userID,
		FullName:   strings.TrimSpace(fullName),
		Line1:      strings.TrimSpace(line1),
		City:       strings.TrimSpace(city),
		PostalCode: strings.TrimSpace(postalCode),
		Country:    country,
	}, nil
}

// Update replaces the address fields
func (a *Address) Update(fullName, line1, line2, city, region, postalCode, country, phone string) error {
	updated, err := NewAddress(a.TenantID, a.UserID, fullName, line1, city, postalCode, country)
	if err != nil {
		return err
	}

	a.FullName = updated.FullName
	a.Line1 = updated.Line1
	a.Line2 = strings.TrimSpace(line2)
	a.City = updated.City
	a.Region = strings.TrimSpace(region)
	a.PostalCode = updated.PostalCode
	a.Country = updated.Country
	a.Phone = strings.TrimSpace(phone)
	a.UpdatedAt = time.Now()

	return nil
}

// MakeDefault marks this address as the user's default shipping address
func (a *Address) MakeDefault() {
	a.IsDefault = true
	a.UpdatedAt = time.Now()
}

// ClearDefault unmarks this address as default
func (a *Address) ClearDefault() {
	a.IsDefault = false
	a.UpdatedAt = time.Now()
}

// Oneline returns the address as a single formatted line
func (a *Address) Oneline() string {
	parts := []string{a.Line1}
	if a.Line2 != "" {
		parts = append(parts, a.Line2)
	}
	parts = append(parts, a.City)
	if a.Region != "" {
		parts = append(parts, a.Region)
	}
	parts = append(parts, a.PostalCode, a.Country)
	return strings.Join(parts, ", ")
}
