package services

import (
	"fmt"
	"strings"
	"time"

	"walkup/internal/cache"
	"walkup/internal/models"
	"walkup/internal/repositories"
)

const (
	productCachePrefix = "products:"
	productCacheTTL    = 5 * time.Minute
)

// ProductService handles catalog reads (cached) and admin catalog writes.
type ProductService struct {
	repo  repositories.ProductRepository
	cache *cache.Cache
}

// NewProductService creates a new ProductService. listCache may be nil to
// disable caching.
func NewProductService(repo repositories.ProductRepository, listCache *cache.Cache) *ProductService {
	return &ProductService{
		repo:  repo,
		cache: listCache,
	}
}

// GetAllProducts retrieves the whole catalog, unfiltered (admin view).
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetFilteredProducts retrieves products matching the given filters in the
// requested order. Results are cached per (filters, sort) key until the next
// admin write.
func (s *ProductService) GetFilteredProducts(categories, brands []string, sortBy string) ([]models.Product, error) {
	key := fmt.Sprintf("%slist:%s|%s|%s",
		productCachePrefix,
		strings.Join(categories, ","),
		strings.Join(brands, ","),
		sortBy,
	)

	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			if products, ok := cached.([]models.Product); ok {
				return products, nil
			}
		}
	}

	products, err := s.repo.GetFiltered(categories, brands, sortBy)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(key, products, productCacheTTL)
	}
	return products, nil
}

// GetProductByID retrieves a single product.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new product and invalidates cached listings.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if err := s.repo.Create(product); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// ProductUpdate carries the fields of an edit request. Nil pointers leave the
// stored value untouched; an explicit zero for price or salePrice is stored
// as 0 (no discount).
type ProductUpdate struct {
	Image         *string  `json:"image"`
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	Category      *string  `json:"category"`
	Brand         *string  `json:"brand"`
	Price         *float64 `json:"price"`
	SalePrice     *float64 `json:"salePrice"`
	TotalStock    *int     `json:"totalStock"`
	AverageReview *float64 `json:"averageReview"`
}

// UpdateProduct overwrites only the fields present in the request.
func (s *ProductService) UpdateProduct(id string, update ProductUpdate) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if update.Image != nil {
		product.Image = *update.Image
	}
	if update.Title != nil {
		product.Title = *update.Title
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Category != nil {
		product.Category = *update.Category
	}
	if update.Brand != nil {
		product.Brand = *update.Brand
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.SalePrice != nil {
		product.SalePrice = *update.SalePrice
	}
	if update.TotalStock != nil {
		product.TotalStock = *update.TotalStock
	}
	if update.AverageReview != nil {
		product.AverageReview = *update.AverageReview
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.invalidate()
	return product, nil
}

// DeleteProduct deletes a product and invalidates cached listings.
func (s *ProductService) DeleteProduct(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *ProductService) invalidate() {
	if s.cache != nil {
		s.cache.DeletePrefix(productCachePrefix)
	}
}
