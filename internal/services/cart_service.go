package services

import (
	"errors"

	"walkup/internal/apperr"
	"walkup/internal/models"
	"walkup/internal/repositories"
)

// CartService handles cart line item mutations and the joined cart view.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func isNotFound(err error) bool {
	var appErr *apperr.Error
	return errors.As(err, &appErr) && appErr.Kind == apperr.KindNotFound
}

// AddToCart appends a line item to the user's cart, or increments the
// quantity if the product is already in it. The cart is created lazily on the
// first add. The resulting quantity may not exceed the current stock.
func (s *CartService) AddToCart(userID, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, apperr.Validation("Quantity must be at least 1")
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if !isNotFound(err) {
			return nil, err
		}
		cart = &models.Cart{UserID: userID}
		if err := s.cartRepo.Create(cart); err != nil {
			return nil, err
		}
	}

	newQuantity := quantity
	var existing *models.CartItem
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			existing = &cart.Items[i]
			newQuantity += existing.Quantity
			break
		}
	}

	if newQuantity > product.TotalStock {
		return nil, apperr.InsufficientStock(product.Title)
	}

	if existing != nil {
		if err := s.cartRepo.UpdateItemQuantity(cart.ID, productID, newQuantity); err != nil {
			return nil, err
		}
	} else {
		item := &models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := s.cartRepo.AddItem(item); err != nil {
			return nil, err
		}
	}

	return s.cartRepo.GetByUserID(userID)
}

// UpdateQuantity sets a line item's quantity directly. A quantity of zero (or
// less) removes the line.
func (s *CartService) UpdateQuantity(userID, productID string, quantity int) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		if err := s.cartRepo.DeleteItem(cart.ID, productID); err != nil {
			return nil, err
		}
		return s.cartRepo.GetByUserID(userID)
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if quantity > product.TotalStock {
		return nil, apperr.InsufficientStock(product.Title)
	}

	if err := s.cartRepo.UpdateItemQuantity(cart.ID, productID, quantity); err != nil {
		return nil, err
	}
	return s.cartRepo.GetByUserID(userID)
}

// RemoveFromCart deletes a line item. Removing a product that is not in the
// cart, or from a user with no cart, is a no-op.
func (s *CartService) RemoveFromCart(userID, productID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if isNotFound(err) {
			return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
		}
		return nil, err
	}

	if err := s.cartRepo.DeleteItem(cart.ID, productID); err != nil {
		return nil, err
	}
	return s.cartRepo.GetByUserID(userID)
}

// FetchCart returns the cart joined with the current catalog state of each
// product. Lines whose product has been deleted from the catalog are dropped.
// Cart items deliberately reflect live prices; only orders snapshot.
func (s *CartService) FetchCart(userID string) (*models.CartView, error) {
	view := &models.CartView{UserID: userID, Items: []models.CartItemView{}}

	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if isNotFound(err) {
			return view, nil
		}
		return nil, err
	}
	view.ID = cart.ID

	for _, item := range cart.Items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, err
		}
		view.Items = append(view.Items, models.CartItemView{
			ProductID: product.ID,
			Image:     product.Image,
			Title:     product.Title,
			Price:     product.Price,
			SalePrice: product.SalePrice,
			Quantity:  item.Quantity,
		})
	}

	return view, nil
}
