package repositories

import (
	"walkup/internal/models"
)

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	// GetByUserID returns the user's cart with its items preloaded.
	GetByUserID(userID string) (*models.Cart, error)
	Create(cart *models.Cart) error
	AddItem(item *models.CartItem) error
	UpdateItemQuantity(cartID, productID string, quantity int) error
	DeleteItem(cartID, productID string) error
}
