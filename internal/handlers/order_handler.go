package handlers

import (
	"log"

	"walkup/internal/models"
	"walkup/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles the shop-facing order and payment endpoints.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the shop order routes, including the mock payment
// endpoints the storefront drives during development.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/order")
	orderRoutes.Post("/create", h.HandleCreate)
	orderRoutes.Post("/capture", h.HandleCapture)
	orderRoutes.Get("/list/:userId", h.HandleListByUser)
	orderRoutes.Get("/details/:id", h.HandleDetails)

	mockRoutes := router.Group("/mock-payment")
	mockRoutes.Post("/create", h.HandleMockCreate)
	mockRoutes.Post("/capture", h.HandleCapture)
	mockRoutes.Get("/status/:paymentId", h.HandleMockStatus)
}

// CaptureRequest is the body of a capture call. The payment id is echoed by
// the storefront but the stored order is authoritative.
type CaptureRequest struct {
	OrderID   string `json:"orderId" validate:"required"`
	PaymentID string `json:"paymentId"`
	PayerID   string `json:"payerId"`
}

// HandleCreate creates a pending order and returns the provider redirect.
func (h *OrderHandler) HandleCreate(c *fiber.Ctx) error {
	var order models.Order
	if err := c.BodyParser(&order); err != nil {
		log.Printf("Error parsing order body: %v", err)
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(order); err != nil {
		return respondValidation(c, err)
	}
	if !ownsResource(c, order.UserID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "You can only create orders for yourself",
		})
	}

	result, err := h.service.CreateOrder(&order)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"orderId":     result.Order.ID,
		"paymentId":   result.PaymentID,
		"approvalURL": result.ApprovalURL,
		"data":        result.Order,
	})
}

// HandleMockCreate creates an order forced onto the mock provider, whatever
// payment method the body carries.
func (h *OrderHandler) HandleMockCreate(c *fiber.Ctx) error {
	var order models.Order
	if err := c.BodyParser(&order); err != nil {
		log.Printf("Error parsing order body: %v", err)
		return badRequest(c, "Invalid request body")
	}
	order.PaymentMethod = models.PaymentMethodMock
	if err := h.validate.Struct(order); err != nil {
		return respondValidation(c, err)
	}
	if !ownsResource(c, order.UserID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "You can only create orders for yourself",
		})
	}

	result, err := h.service.CreateOrder(&order)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"orderId":     result.Order.ID,
		"paymentId":   result.PaymentID,
		"approvalURL": result.ApprovalURL,
		"data":        result.Order,
	})
}

// HandleCapture finalizes the payment and fulfills the order.
func (h *OrderHandler) HandleCapture(c *fiber.Ctx) error {
	var req CaptureRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing capture body: %v", err)
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	existing, err := h.service.GetOrderByID(req.OrderID)
	if err != nil {
		return respondError(c, err)
	}
	if !ownsResource(c, existing.UserID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "You can only pay for your own orders",
		})
	}

	order, err := h.service.CapturePayment(req.OrderID, req.PayerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Order confirmed",
		"data":    order,
	})
}

// HandleListByUser returns the user's orders, newest first.
func (h *OrderHandler) HandleListByUser(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if !ownsResource(c, userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "You can only view your own orders",
		})
	}

	orders, err := h.service.ListByUser(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
	})
}

// HandleDetails returns a single order the user owns.
func (h *OrderHandler) HandleDetails(c *fiber.Ctx) error {
	order, err := h.service.GetOrderByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if !ownsResource(c, order.UserID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "You can only view your own orders",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    order,
	})
}

// HandleMockStatus reports the stored payment state for a mock payment id in
// provider vocabulary.
func (h *OrderHandler) HandleMockStatus(c *fiber.Ctx) error {
	status, err := h.service.PaymentStatusFor(c.Params("paymentId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"paymentId": c.Params("paymentId"),
			"status":    status,
		},
	})
}
