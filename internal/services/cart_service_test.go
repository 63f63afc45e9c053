package services_test

import (
	"testing"

	"walkup/internal/apperr"
	"walkup/internal/models"
	"walkup/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func laptop() *models.Product {
	return &models.Product{
		ID:         "prod-1",
		Title:      "Laptop",
		Price:      1200,
		TotalStock: 5,
	}
}

func TestCartService_AddToCart_NewCart(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	service := services.NewCartService(mockCartRepo, mockProductRepo)

	mockProductRepo.On("GetByID", "prod-1").Return(laptop(), nil).Once()
	// No cart yet: one is created on first add.
	mockCartRepo.On("GetByUserID", "user-1").Return(nil, apperr.NotFound("Cart not found")).Once()
	mockCartRepo.On("Create", mock.AnythingOfType("*models.Cart")).Run(func(args mock.Arguments) {
		cart := args.Get(0).(*models.Cart)
		cart.ID = "cart-1"
	}).Return(nil).Once()
	mockCartRepo.On("AddItem", mock.AnythingOfType("*models.CartItem")).Run(func(args mock.Arguments) {
		item := args.Get(0).(*models.CartItem)
		assert.Equal(t, "cart-1", item.CartID)
		assert.Equal(t, "prod-1", item.ProductID)
		assert.Equal(t, 3, item.Quantity)
	}).Return(nil).Once()
	mockCartRepo.On("GetByUserID", "user-1").Return(&models.Cart{
		ID:     "cart-1",
		UserID: "user-1",
		Items:  []models.CartItem{{CartID: "cart-1", ProductID: "prod-1", Quantity: 3}},
	}, nil).Once()

	cart, err := service.AddToCart("user-1", "prod-1", 3)
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	mockCartRepo.AssertExpectations(t)
	mockProductRepo.AssertExpectations(t)
}

func TestCartService_AddToCart_IncrementsExistingLine(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	service := services.NewCartService(mockCartRepo, mockProductRepo)

	existing := &models.Cart{
		ID:     "cart-1",
		UserID: "user-1",
		Items:  []models.CartItem{{CartID: "cart-1", ProductID: "prod-1", Quantity: 2}},
	}

	mockProductRepo.On("GetByID", "prod-1").Return(laptop(), nil).Once()
	mockCartRepo.On("GetByUserID", "user-1").Return(existing, nil).Once()
	mockCartRepo.On("UpdateItemQuantity", "cart-1", "prod-1", 4).Return(nil).Once()
	mockCartRepo.On("GetByUserID", "user-1").Return(&models.Cart{
		ID:     "cart-1",
		UserID: "user-1",
		Items:  []models.CartItem{{CartID: "cart-1", ProductID: "prod-1", Quantity: 4}},
	}, nil).Once()

	cart, err := service.AddToCart("user-1", "prod-1", 2)
	assert.NoError(t, err)
	assert.Equal(t, 4, cart.Items[0].Quantity)
	mockCartRepo.AssertExpectations(t)
}

func TestCartService_AddToCart_ExceedsStock(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	service := services.NewCartService(mockCartRepo, mockProductRepo)

	existing := &models.Cart{
		ID:     "cart-1",
		UserID: "user-1",
		Items:  []models.CartItem{{CartID: "cart-1", ProductID: "prod-1", Quantity: 4}},
	}

	// 4 in the cart + 2 more exceeds the stock of 5.
	mockProductRepo.On("GetByID", "prod-1").Return(laptop(), nil).Once()
	mockCartRepo.On("GetByUserID", "user-1").Return(existing, nil).Once()

	_, err := service.AddToCart("user-1", "prod-1", 2)
	assert.Error(t, err)
	assert.Equal(t, apperr.KindInsufficientStock, apperr.KindOf(err))
	mockCartRepo.AssertNotCalled(t, "UpdateItemQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartService_AddToCart_InvalidQuantity(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	service := services.NewCartService(mockCartRepo, mockProductRepo)

	_, err := service.AddToCart("user-1", "prod-1", 0)
	assert.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	mockProductRepo.AssertNotCalled(t, "GetByID", mock.Anything)
}

func TestCartService_UpdateQuantity_ZeroRemovesLine(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	service := services.NewCartService(mockCartRepo, mockProductRepo)

	existing := &models.Cart{
		ID:     "cart-1",
		UserID: "user-1",
		Items:  []models.CartItem{{CartID: "cart-1", ProductID: "prod-1", Quantity: 2}},
	}

	mockCartRepo.On("GetByUserID", "user-1").Return(existing, nil).Once()
	mockCartRepo.On("DeleteItem", "cart-1", "prod-1").Return(nil).Once()
	mockCartRepo.On("GetByUserID", "user-1").Return(&models.Cart{
		ID:     "cart-1",
		UserID: "user-1",
		Items:  []models.CartItem{},
	}, nil).Once()

	cart, err := service.UpdateQuantity("user-1", "prod-1", 0)
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)
	mockCartRepo.AssertExpectations(t)
	mockProductRepo.AssertNotCalled(t, "GetByID", mock.Anything)
}

func TestCartService_UpdateQuantity_CappedByStock(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	service := services.NewCartService(mockCartRepo, mockProductRepo)

	existing := &models.Cart{
		ID:     "cart-1",
		UserID: "user-1",
		Items:  []models.CartItem{{CartID: "cart-1", ProductID: "prod-1", Quantity: 2}},
	}

	mockCartRepo.On("GetByUserID", "user-1").Return(existing, nil).Once()
	mockProductRepo.On("GetByID", "prod-1").Return(laptop(), nil).Once()

	_, err := service.UpdateQuantity("user-1", "prod-1", 6)
	assert.Error(t, err)
	assert.Equal(t, apperr.KindInsufficientStock, apperr.KindOf(err))
}

func TestCartService_RemoveFromCart_NoCartIsNoop(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	service := services.NewCartService(mockCartRepo, mockProductRepo)

	mockCartRepo.On("GetByUserID", "user-1").Return(nil, apperr.NotFound("Cart not found")).Once()

	cart, err := service.RemoveFromCart("user-1", "prod-1")
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)
	mockCartRepo.AssertNotCalled(t, "DeleteItem", mock.Anything, mock.Anything)
}

func TestCartService_FetchCart_DropsDeletedProducts(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	service := services.NewCartService(mockCartRepo, mockProductRepo)

	existing := &models.Cart{
		ID:     "cart-1",
		UserID: "user-1",
		Items: []models.CartItem{
			{CartID: "cart-1", ProductID: "prod-1", Quantity: 2},
			{CartID: "cart-1", ProductID: "prod-gone", Quantity: 1},
		},
	}

	mockCartRepo.On("GetByUserID", "user-1").Return(existing, nil).Once()
	mockProductRepo.On("GetByID", "prod-1").Return(laptop(), nil).Once()
	mockProductRepo.On("GetByID", "prod-gone").Return(nil, apperr.NotFound("Product not found")).Once()

	view, err := service.FetchCart("user-1")
	assert.NoError(t, err)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, "prod-1", view.Items[0].ProductID)
	assert.Equal(t, "Laptop", view.Items[0].Title)
	assert.Equal(t, 1200.0, view.Items[0].Price)
	mockCartRepo.AssertExpectations(t)
	mockProductRepo.AssertExpectations(t)
}

func TestCartService_FetchCart_NoCart(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	service := services.NewCartService(mockCartRepo, mockProductRepo)

	mockCartRepo.On("GetByUserID", "user-1").Return(nil, apperr.NotFound("Cart not found")).Once()

	view, err := service.FetchCart("user-1")
	assert.NoError(t, err)
	assert.Equal(t, "user-1", view.UserID)
	assert.Empty(t, view.Items)
}
