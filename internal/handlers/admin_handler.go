package handlers

import (
	"log"

	"walkup/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles the admin order management and analytics endpoints.
type AdminHandler struct {
	orderService     *services.OrderService
	analyticsService *services.AnalyticsService
	validate         *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(orderService *services.OrderService, analyticsService *services.AnalyticsService) *AdminHandler {
	return &AdminHandler{
		orderService:     orderService,
		analyticsService: analyticsService,
		validate:         validator.New(),
	}
}

// RegisterRoutes registers the admin routes. The router is expected to carry
// the admin-only middleware already.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/get", h.HandleListOrders)
	orderRoutes.Get("/details/:id", h.HandleOrderDetails)
	orderRoutes.Put("/update/:id", h.HandleUpdateOrderStatus)

	router.Get("/analytics", h.HandleAnalytics)
}

// UpdateOrderStatusRequest is the body of an admin status update.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// HandleListOrders returns every order in the system.
func (h *AdminHandler) HandleListOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.GetAllOrders()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
	})
}

// HandleOrderDetails returns any order by id.
func (h *AdminHandler) HandleOrderDetails(c *fiber.Ctx) error {
	order, err := h.orderService.GetOrderByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    order,
	})
}

// HandleUpdateOrderStatus overwrites the order status.
func (h *AdminHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var req UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing status update body: %v", err)
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	if err := h.orderService.UpdateOrderStatus(c.Params("id"), req.Status); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Order status is updated successfully!",
	})
}

// HandleAnalytics builds the dashboard report over the requested window.
func (h *AdminHandler) HandleAnalytics(c *fiber.Ctx) error {
	timeRange := c.QueryInt("timeRange", 30)
	if timeRange < 1 {
		return badRequest(c, "timeRange must be a positive number of days")
	}

	report, err := h.analyticsService.Report(timeRange)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    report,
	})
}
