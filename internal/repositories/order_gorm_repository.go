package repositories

import (
	"errors"
	"fmt"
	"time"

	"walkup/internal/apperr"
	"walkup/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Create creates a new order with its snapshot items.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now()
	}
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByID retrieves a single order with its items.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// GetByPaymentID retrieves the order holding an external payment identifier.
func (r *GORMOrderRepository) GetByPaymentID(paymentID string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "payment_id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order with payment ID %s not found", paymentID)
		}
		return nil, fmt.Errorf("failed to get order by payment ID %s: %w", paymentID, err)
	}
	return &order, nil
}

// GetByUserID retrieves all orders of a user, newest first. An empty slice is
// a valid result.
func (r *GORMOrderRepository) GetByUserID(userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Order("order_date desc").Find(&orders, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// GetAll retrieves every order with its items.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Order("order_date desc").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus overwrites the order status.
func (r *GORMOrderRepository) UpdateStatus(id string, orderStatus string) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("order_status", orderStatus)
	if res.Error != nil {
		return fmt.Errorf("failed to update status for order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("order with ID %s not found for status update", id)
	}
	return nil
}

// SetPaymentOutcome records the terminal payment result on the order.
func (r *GORMOrderRepository) SetPaymentOutcome(id, orderStatus, paymentStatus string) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
		"order_status":   orderStatus,
		"payment_status": paymentStatus,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to set payment outcome for order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("order with ID %s not found", id)
	}
	return nil
}

// Fulfill runs the whole capture side effect in one transaction.
//
// The status flip doubles as the idempotency gate: only an order whose
// payment is still pending can be finalized, so a concurrent capture of the
// same order loses the conditional update and gets ErrAlreadyFinalized with
// no decrement of its own. Each stock decrement is guarded by
// total_stock >= quantity, which keeps stock non-negative under any
// interleaving of captures over overlapping products.
func (r *GORMOrderRepository) Fulfill(order *models.Order, payerID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND payment_status = ?", order.ID, models.PaymentStatusPending).
			Updates(map[string]interface{}{
				"order_status":   models.OrderStatusConfirmed,
				"payment_status": models.PaymentStatusPaid,
				"payer_id":       payerID,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to finalize order %s: %w", order.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyFinalized
		}

		for _, item := range order.Items {
			var product models.Product
			if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("product with ID %s not found", item.ProductID)
				}
				return fmt.Errorf("failed to load product %s: %w", item.ProductID, err)
			}

			dec := tx.Model(&models.Product{}).
				Where("id = ? AND total_stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("total_stock", gorm.Expr("total_stock - ?", item.Quantity))
			if dec.Error != nil {
				return fmt.Errorf("failed to decrement stock for product %s: %w", item.ProductID, dec.Error)
			}
			if dec.RowsAffected == 0 {
				return apperr.InsufficientStock(product.Title)
			}
		}

		if err := tx.Where("cart_id = ?", order.CartID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete cart items for cart %s: %w", order.CartID, err)
		}
		if err := tx.Delete(&models.Cart{}, "id = ?", order.CartID).Error; err != nil {
			return fmt.Errorf("failed to delete cart %s: %w", order.CartID, err)
		}

		return nil
	})
}
