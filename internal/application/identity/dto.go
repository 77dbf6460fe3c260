package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/identity"
)

// SignupInput contains the input for shopper registration
type SignupInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult contains the tokens and user info of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// RefreshInput contains the input for token refresh
type RefreshInput struct {
	RefreshToken string
}

// LogoutInput contains the token IDs to revoke on logout
type LogoutInput struct {
	AccessJTI  string
	AccessTTL  time.Duration
	RefreshJTI string
	RefreshTTL time.Duration
}

// UserInfo is the user projection returned to clients
type UserInfo struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	IsStaff     bool      `json:"is_staff"`
	LastLoginAt time.Time `json:"last_login_at,omitempty"`
}

// ToUserInfo maps a user to its client projection
func ToUserInfo(u *identity.User) UserInfo {
	info := UserInfo{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsStaff:   u.IsStaff,
	}
	if u.LastLoginAt != nil {
		info.LastLoginAt = *u.LastLoginAt
	}
	return info
}

// UpdateProfileInput contains profile fields a user may change
type UpdateProfileInput struct {
	FirstName string
	LastName  string
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	OldPassword string
	NewPassword string
}

// AddressInput contains the fields of a saved address
type AddressInput struct {
	FullName   string
	Line1      string
	Line2      string
	City       string
	Region     string
	PostalCode string
	Country    string
	Phone      string
	IsDefault  bool
}

// AddressResponse is the address projection returned to clients
type AddressResponse struct {
	ID         uuid.UUID `json:"id"`
	FullName   string    `json:"full_name"`
	Line1      string    `json:"line1"`
	Line2      string    `json:"line2,omitempty"`
	City       string    `json:"city"`
	Region     string    `json:"region,omitempty"`
	PostalCode string    `json:"postal_code"`
	Country    string    `json:"country"`
	Phone      string    `json:"phone,omitempty"`
	IsDefault  bool      `json:"is_default"`
}

// ToAddressResponse maps an address to its client projection
func ToAddressResponse(a *identity.Address) AddressResponse {
	return AddressResponse{
		ID:         a.ID,
		FullName:   a.FullName,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		Region:     a.Region,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		Phone:      a.Phone,
		IsDefault:  a.IsDefault,
	}
}
