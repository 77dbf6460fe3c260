package identity

import (
	"github.com/storefront/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeUser = "User"

// Event type constants
const (
	EventTypeUserRegistered = "UserRegistered"
	EventTypeUserLoggedIn   = "UserLoggedIn"
)

// UserRegisteredEvent is published when a new account is created
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	Email   string `json:"email"`
	IsStaff bool   `json:"is_staff"`
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(u *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, AggregateTypeUser, u.ID, u.TenantID),
		Email:           u.Email,
		IsStaff:         u.IsStaff,
	}
}

// UserLoggedInEvent is published when a user signs in
type UserLoggedInEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
}

// NewUserLoggedInEvent creates a new UserLoggedInEvent
func NewUserLoggedInEvent(u *User) *UserLoggedInEvent {
	return &UserLoggedInEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserLoggedIn, AggregateTypeUser, u.ID, u.TenantID),
		Email:           u.Email,
	}
}
