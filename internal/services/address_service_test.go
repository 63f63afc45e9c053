package services_test

import (
	"testing"

	"walkup/internal/apperr"
	"walkup/internal/models"
	"walkup/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAddressService_AddAddress(t *testing.T) {
	mockRepo := new(MockAddressRepository)
	service := services.NewAddressService(mockRepo)

	address := &models.Address{
		UserID:  "user-1",
		Address: "12 Main Street",
		City:    "Springfield",
		Pincode: "12345",
		Phone:   "555-0100",
	}

	mockRepo.On("CountByUserID", "user-1").Return(int64(1), nil).Once()
	mockRepo.On("Create", address).Return(nil).Once()

	created, err := service.AddAddress(address)
	assert.NoError(t, err)
	assert.Equal(t, address, created)
	mockRepo.AssertExpectations(t)
}

func TestAddressService_AddAddress_CapReached(t *testing.T) {
	mockRepo := new(MockAddressRepository)
	service := services.NewAddressService(mockRepo)

	mockRepo.On("CountByUserID", "user-1").Return(int64(models.MaxAddressesPerUser), nil).Once()

	_, err := service.AddAddress(&models.Address{UserID: "user-1"})
	assert.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAddressService_UpdateAddress(t *testing.T) {
	mockRepo := new(MockAddressRepository)
	service := services.NewAddressService(mockRepo)

	stored := &models.Address{
		ID:      "addr-1",
		UserID:  "user-1",
		Address: "12 Main Street",
		City:    "Springfield",
	}

	mockRepo.On("GetByID", "user-1", "addr-1").Return(stored, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Address")).Return(nil).Once()

	updated, err := service.UpdateAddress("user-1", "addr-1", &models.Address{
		Address: "34 Oak Avenue",
		City:    "Shelbyville",
		Pincode: "54321",
	})
	assert.NoError(t, err)
	assert.Equal(t, "34 Oak Avenue", updated.Address)
	assert.Equal(t, "Shelbyville", updated.City)
	// Identity fields never change on update.
	assert.Equal(t, "addr-1", updated.ID)
	assert.Equal(t, "user-1", updated.UserID)
	mockRepo.AssertExpectations(t)
}

func TestAddressService_UpdateAddress_NotOwned(t *testing.T) {
	mockRepo := new(MockAddressRepository)
	service := services.NewAddressService(mockRepo)

	// Owner-scoped lookup misses when the address belongs to someone else.
	mockRepo.On("GetByID", "user-2", "addr-1").Return(nil, apperr.NotFound("Address not found")).Once()

	_, err := service.UpdateAddress("user-2", "addr-1", &models.Address{})
	assert.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
}
