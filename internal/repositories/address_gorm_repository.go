package repositories

import (
	"errors"
	"fmt"

	"walkup/internal/apperr"
	"walkup/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMAddressRepository is a GORM implementation of AddressRepository.
type GORMAddressRepository struct {
	db *gorm.DB
}

// NewGORMAddressRepository creates a new instance of GORMAddressRepository.
func NewGORMAddressRepository(db *gorm.DB) *GORMAddressRepository {
	return &GORMAddressRepository{
		db: db,
	}
}

// Create creates a new address.
func (r *GORMAddressRepository) Create(address *models.Address) error {
	if address.ID == "" {
		address.ID = uuid.New().String()
	}
	if err := r.db.Create(address).Error; err != nil {
		return fmt.Errorf("failed to create address: %w", err)
	}
	return nil
}

// GetByUserID retrieves all addresses owned by a user.
func (r *GORMAddressRepository) GetByUserID(userID string) ([]models.Address, error) {
	var addresses []models.Address
	if err := r.db.Find(&addresses, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get addresses for user %s: %w", userID, err)
	}
	return addresses, nil
}

// GetByID retrieves one address, scoped to its owner.
func (r *GORMAddressRepository) GetByID(userID, addressID string) (*models.Address, error) {
	var address models.Address
	if err := r.db.First(&address, "id = ? AND user_id = ?", addressID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("address with ID %s not found", addressID)
		}
		return nil, fmt.Errorf("failed to get address %s: %w", addressID, err)
	}
	return &address, nil
}

// Update persists all fields of an existing address.
func (r *GORMAddressRepository) Update(address *models.Address) error {
	res := r.db.Model(address).Select("*").Omit("id", "user_id", "created_at").Updates(address)
	if res.Error != nil {
		return fmt.Errorf("failed to update address: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("address with ID %s not found for update", address.ID)
	}
	return nil
}

// Delete removes an address, scoped to its owner.
func (r *GORMAddressRepository) Delete(userID, addressID string) error {
	res := r.db.Delete(&models.Address{}, "id = ? AND user_id = ?", addressID, userID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete address %s: %w", addressID, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("address with ID %s not found for deletion", addressID)
	}
	return nil
}

// CountByUserID returns how many addresses a user currently holds.
func (r *GORMAddressRepository) CountByUserID(userID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Address{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count addresses for user %s: %w", userID, err)
	}
	return count, nil
}
