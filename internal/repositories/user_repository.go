package repositories

import (
	"time"

	"walkup/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	// GetByResetToken finds the user holding a reset token that has not
	// expired as of now.
	GetByResetToken(token string, now time.Time) (*models.User, error)
	Update(user *models.User) error
	GetAll() ([]models.User, error)
}
