package repositories

import (
	"errors"

	"walkup/internal/models"
)

// ErrAlreadyFinalized is returned by Fulfill when the order's payment status
// is no longer pending: a concurrent or repeated capture already finalized
// it. Callers treat it as an idempotent success, not a failure.
var ErrAlreadyFinalized = errors.New("order payment already finalized")

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	GetByPaymentID(paymentID string) (*models.Order, error)
	GetByUserID(userID string) ([]models.Order, error)
	GetAll() ([]models.Order, error)
	UpdateStatus(id string, orderStatus string) error
	// SetPaymentOutcome records a payment failure or refund on the order.
	SetPaymentOutcome(id, orderStatus, paymentStatus string) error
	// Fulfill atomically marks the order confirmed/paid, decrements stock
	// for every snapshot item, and deletes the originating cart. Either all
	// of it happens or none of it does: a single item with insufficient
	// stock rolls back every decrement.
	Fulfill(order *models.Order, payerID string) error
}
