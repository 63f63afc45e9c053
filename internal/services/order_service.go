package services

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"walkup/internal/apperr"
	"walkup/internal/models"
	"walkup/internal/payment"
	"walkup/internal/repositories"

	"walkup/pkg/rabbitmq"
)

// OrderEvent is the JSON payload published on order lifecycle changes.
type OrderEvent struct {
	OrderID       string    `json:"orderId"`
	UserID        string    `json:"userId"`
	OrderStatus   string    `json:"orderStatus"`
	PaymentStatus string    `json:"paymentStatus"`
	PaymentMethod string    `json:"paymentMethod"`
	TotalAmount   float64   `json:"totalAmount"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// CheckoutResult is what order creation hands back to the client: the new
// order plus the provider redirect.
type CheckoutResult struct {
	Order       *models.Order `json:"order"`
	ApprovalURL string        `json:"approvalURL"`
	PaymentID   string        `json:"paymentId"`
}

// OrderService drives the order payment and fulfillment workflow.
type OrderService struct {
	orderRepo repositories.OrderRepository
	providers map[string]payment.Provider
	publisher EventPublisher
}

// NewOrderService creates a new OrderService. providers maps payment method
// names to their implementation; publisher may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, providers map[string]payment.Provider, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		providers: providers,
		publisher: publisher,
	}
}

// CreateOrder persists a pending order carrying snapshot items and the
// address snapshot, authorizes the payment with the configured provider, and
// returns the approval redirect. Stock is not touched here: reservation is
// deferred until capture.
func (s *OrderService) CreateOrder(order *models.Order) (*CheckoutResult, error) {
	if len(order.Items) == 0 {
		return nil, apperr.Validation("An order needs at least one item")
	}

	// The total is recomputed from the snapshot lines; the client's figure
	// is not trusted.
	var total float64
	for _, item := range order.Items {
		if item.Quantity < 1 {
			return nil, apperr.Validation("Item quantity must be at least 1")
		}
		total += item.Price * float64(item.Quantity)
	}
	order.TotalAmount = total
	order.OrderStatus = models.OrderStatusPending
	order.PaymentStatus = models.PaymentStatusPending
	order.OrderDate = time.Now()

	approvalURL := ""
	if order.PaymentMethod != models.PaymentMethodCOD {
		provider, ok := s.providers[order.PaymentMethod]
		if !ok {
			return nil, apperr.Validation("Unsupported payment method: %s", order.PaymentMethod)
		}

		intent, err := provider.Authorize(order)
		if err != nil {
			return nil, apperr.Provider(err, "Error while creating %s payment", order.PaymentMethod)
		}
		order.PaymentID = intent.PaymentID
		order.PayerID = intent.PayerID
		approvalURL = intent.ApprovalURL
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, apperr.Internal(err, "failed to create order")
	}

	s.publish(rabbitmq.RoutingOrderCreated, order)

	return &CheckoutResult{
		Order:       order,
		ApprovalURL: approvalURL,
		PaymentID:   order.PaymentID,
	}, nil
}

// CapturePayment finalizes the payment for an order and, on success, runs the
// fulfillment transaction (stock decrement + cart deletion). Capturing an
// already-paid order returns it unchanged, so retries and racing callbacks
// cannot decrement stock twice.
func (s *OrderService) CapturePayment(orderID, payerID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, apperr.NotFound("Order can not be found")
	}

	if order.PaymentStatus == models.PaymentStatusPaid {
		return order, nil
	}
	if order.PaymentStatus != models.PaymentStatusPending {
		return nil, apperr.Validation("Order is not awaiting payment")
	}

	provider, ok := s.providers[order.PaymentMethod]
	if !ok {
		return nil, apperr.Validation("Unsupported payment method: %s", order.PaymentMethod)
	}

	if err := provider.Capture(order.PaymentID); err != nil {
		if errors.Is(err, payment.ErrDeclined) {
			s.recordFailure(order)
			return nil, apperr.Validation("Payment was not completed")
		}
		return nil, apperr.Provider(err, "Payment capture failed")
	}

	if err := s.orderRepo.Fulfill(order, payerID); err != nil {
		if errors.Is(err, repositories.ErrAlreadyFinalized) {
			// A concurrent capture won the race; hand back its result.
			return s.orderRepo.GetByID(orderID)
		}
		switch apperr.KindOf(err) {
		case apperr.KindInsufficientStock, apperr.KindNotFound:
			// Nothing was decremented: the transaction rolled back whole.
			s.recordFailure(order)
			return nil, err
		default:
			return nil, apperr.Internal(err, "failed to fulfill order")
		}
	}

	order, err = s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to reload order")
	}

	s.publish(rabbitmq.RoutingOrderConfirmed, order)
	return order, nil
}

// PaymentStatusFor reports the payment state of the order holding the given
// external payment id, in provider vocabulary. Unlike a gateway poll this is
// a lookup of stored state and always answers the same for the same order
// state.
func (s *OrderService) PaymentStatusFor(paymentID string) (string, error) {
	order, err := s.orderRepo.GetByPaymentID(paymentID)
	if err != nil {
		return "", err
	}

	switch order.PaymentStatus {
	case models.PaymentStatusPaid:
		return "COMPLETED", nil
	case models.PaymentStatusFailed:
		return "FAILED", nil
	case models.PaymentStatusRefunded:
		return "CANCELLED", nil
	default:
		return "PENDING", nil
	}
}

// ListByUser returns the user's orders, newest first. Zero orders yields an
// empty list, not an error.
func (s *OrderService) ListByUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(userID)
}

// GetOrderByID retrieves a single order.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// GetAllOrders retrieves every order (admin view).
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// UpdateOrderStatus overwrites the order status (admin operation). Only the
// status vocabulary is checked; there is no transition table.
func (s *OrderService) UpdateOrderStatus(id, status string) error {
	if !models.ValidOrderStatuses[status] {
		return apperr.Validation("Invalid order status: %s", status)
	}
	return s.orderRepo.UpdateStatus(id, status)
}

func (s *OrderService) recordFailure(order *models.Order) {
	if err := s.orderRepo.SetPaymentOutcome(order.ID, models.OrderStatusCancelled, models.PaymentStatusFailed); err != nil {
		log.Printf("Failed to record payment failure for order %s: %v", order.ID, err)
		return
	}
	order.OrderStatus = models.OrderStatusCancelled
	order.PaymentStatus = models.PaymentStatusFailed
	s.publish(rabbitmq.RoutingOrderCancelled, order)
}

func (s *OrderService) publish(routingKey string, order *models.Order) {
	if s.publisher == nil {
		return
	}

	event := OrderEvent{
		OrderID:       order.ID,
		UserID:        order.UserID,
		OrderStatus:   order.OrderStatus,
		PaymentStatus: order.PaymentStatus,
		PaymentMethod: order.PaymentMethod,
		TotalAmount:   order.TotalAmount,
		OccurredAt:    time.Now(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event for order %s: %v", routingKey, order.ID, err)
		return
	}
	if err := s.publisher.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", routingKey, order.ID, err)
	}
}
