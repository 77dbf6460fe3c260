package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/identity"
)

// ProfileService handles account profile and address book operations
type ProfileService struct {
	userRepo    identity.UserRepository
	addressRepo identity.AddressRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(userRepo identity.UserRepository, addressRepo identity.AddressRepository) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		addressRepo: addressRepo,
	}
}

// Get returns the caller's profile
func (s *ProfileService) Get(ctx context.Context, tenantID, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	info := ToUserInfo(user)
	return &info, nil
}

// UpdateProfile updates the caller's name
func (s *ProfileService) UpdateProfile(ctx context.Context, tenantID, userID uuid.UUID, input UpdateProfileInput) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	if err := user.UpdateProfile(input.FirstName, input.LastName); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	info := ToUserInfo(user)
	return &info, nil
}

// ChangePassword changes the caller's password after verifying the old one
func (s *ProfileService) ChangePassword(ctx context.Context, tenantID, userID uuid.UUID, input ChangePasswordInput) error {
	user, err := s.userRepo.FindByID(ctx, tenantID, userID)
	if err != nil {
		return err
	}

	if err := user.ChangePassword(input.OldPassword, input.NewPassword); err != nil {
		return err
	}
	return s.userRepo.Save(ctx, user)
}

// ListAddresses lists the caller's saved addresses
func (s *ProfileService) ListAddresses(ctx context.Context, tenantID, userID uuid.UUID) ([]AddressResponse, error) {
	addresses, err := s.addressRepo.FindByUser(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]AddressResponse, len(addresses))
	for i := range addresses {
		responses[i] = ToAddressResponse(&addresses[i])
	}
	return responses, nil
}

// AddAddress saves a new address to the caller's address book
func (s *ProfileService) AddAddress(ctx context.Context, tenantID, userID uuid.UUID, input AddressInput) (*AddressResponse, error) {
	address, err := identity.NewAddress(tenantID, userID, input.FullName, input.Line1, input.City, input.PostalCode, input.Country)
	if err != nil {
		return nil, err
	}
	if err := address.Update(input.FullName, input.Line1, input.Line2, input.City, input.Region, input.PostalCode, input.Country, input.Phone); err != nil {
		return nil, err
	}

	if input.IsDefault {
		if err := s.addressRepo.ClearDefault(ctx, tenantID, userID); err != nil {
			return nil, err
		}
		address.MakeDefault()
	}

	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}

	resp := ToAddressResponse(address)
	return &resp, nil
}

// UpdateAddress updates a saved address
func (s *ProfileService) UpdateAddress(ctx context.Context, tenantID, userID, addressID uuid.UUID, input AddressInput) (*AddressResponse, error) {
	address, err := s.addressRepo.FindByID(ctx, tenantID, userID, addressID)
	if err != nil {
		return nil, err
	}

	if err := address.Update(input.FullName, input.Line1, input.Line2, input.City, input.Region, input.PostalCode, input.Country, input.Phone); err != nil {
		return nil, err
	}

	if input.IsDefault && !address.IsDefault {
		if err := s.addressRepo.ClearDefault(ctx, tenantID, userID); err != nil {
			return nil, err
		}
		address.MakeDefault()
	}

	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}

	resp := ToAddressResponse(address)
	return &resp, nil
}

// DeleteAddress removes a saved address
func (s *ProfileService) DeleteAddress(ctx context.Context, tenantID, userID, addressID uuid.UUID) error {
	return s.addressRepo.Delete(ctx, tenantID, userID, addressID)
}

// MakeDefaultAddress marks an address as the checkout default
func (s *ProfileService) MakeDefaultAddress(ctx context.Context, tenantID, userID, addressID uuid.UUID) error {
	address, err := s.addressRepo.FindByID(ctx, tenantID, userID, addressID)
	if err != nil {
		return err
	}

	if err := s.addressRepo.ClearDefault(ctx, tenantID, userID); err != nil {
		return err
	}
	address.MakeDefault()
	return s.addressRepo.Save(ctx, address)
}
