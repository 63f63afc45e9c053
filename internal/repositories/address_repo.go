package repositories

import (
	"walkup/internal/models"
)

// AddressRepository defines the interface for address book data access.
// Lookups are always owner-scoped so one user can never touch another's
// addresses.
type AddressRepository interface {
	Create(address *models.Address) error
	GetByUserID(userID string) ([]models.Address, error)
	GetByID(userID, addressID string) (*models.Address, error)
	Update(address *models.Address) error
	Delete(userID, addressID string) error
	CountByUserID(userID string) (int64, error)
}
