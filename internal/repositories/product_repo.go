package repositories

import (
	"walkup/internal/models"
)

// Sort keys accepted by GetFiltered.
const (
	SortPriceLowToHigh = "price-lowtohigh"
	SortPriceHighToLow = "price-hightolow"
	SortTitleAToZ      = "title-atoz"
	SortTitleZToA      = "title-ztoa"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	// GetFiltered returns products matching an AND of the category and brand
	// filters, each being an OR over its values, ordered per sortBy.
	GetFiltered(categories, brands []string, sortBy string) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
