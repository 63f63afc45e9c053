package services

import (
	"walkup/internal/apperr"
	"walkup/internal/models"
	"walkup/internal/repositories"
)

// AddressService manages a user's address book. The 3-address cap is enforced
// here, not in the client.
type AddressService struct {
	repo repositories.AddressRepository
}

// NewAddressService creates a new AddressService.
func NewAddressService(repo repositories.AddressRepository) *AddressService {
	return &AddressService{
		repo: repo,
	}
}

// AddAddress stores a new address for the user, rejecting the add once the
// cap is reached.
func (s *AddressService) AddAddress(address *models.Address) (*models.Address, error) {
	count, err := s.repo.CountByUserID(address.UserID)
	if err != nil {
		return nil, err
	}
	if count >= models.MaxAddressesPerUser {
		return nil, apperr.Validation("You can save at most %d addresses", models.MaxAddressesPerUser)
	}

	if err := s.repo.Create(address); err != nil {
		return nil, err
	}
	return address, nil
}

// ListAddresses returns the user's address book.
func (s *AddressService) ListAddresses(userID string) ([]models.Address, error) {
	return s.repo.GetByUserID(userID)
}

// UpdateAddress overwrites an address the user owns.
func (s *AddressService) UpdateAddress(userID, addressID string, update *models.Address) (*models.Address, error) {
	address, err := s.repo.GetByID(userID, addressID)
	if err != nil {
		return nil, err
	}

	address.Address = update.Address
	address.City = update.City
	address.Pincode = update.Pincode
	address.Phone = update.Phone
	address.Notes = update.Notes

	if err := s.repo.Update(address); err != nil {
		return nil, err
	}
	return address, nil
}

// DeleteAddress removes an address the user owns.
func (s *AddressService) DeleteAddress(userID, addressID string) error {
	return s.repo.Delete(userID, addressID)
}
