package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by ID within a store
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email within a store
	FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*User, error)

	// FindAll finds users matching the filter within a store
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]User, error)

	// Save creates or updates a user
	Save(ctx context.Context, u *User) error

	// Delete deletes a user
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// Count counts users matching the filter within a store
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// CountActiveShoppers counts active non-staff users of a store
	CountActiveShoppers(ctx context.Context, tenantID uuid.UUID) (int64, error)

	// ExistsByEmail checks if an email is already registered in a store
	ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error)
}

// AddressRepository defines the interface for address book persistence
type AddressRepository interface {
	// FindByID finds an address owned by the given user
	FindByID(ctx context.Context, tenantID, userID, id uuid.UUID) (*Address, error)

	// FindByUser lists a user's saved addresses
	FindByUser(ctx context.Context, tenantID, userID uuid.UUID) ([]Address, error)

	// FindDefault finds the user's default address, if any
	FindDefault(ctx context.Context, tenantID, userID uuid.UUID) (*Address, error)

	// Save creates or updates an address
	Save(ctx context.Context, a *Address) error

	// Delete deletes an address
	Delete(ctx context.Context, tenantID, userID, id uuid.UUID) error

	// ClearDefault unmarks any default address of the user
	ClearDefault(ctx context.Context, tenantID, userID uuid.UUID) error
}
