package handlers

import (
	"log"

	"walkup/internal/middleware"
	"walkup/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the shopping cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Post("/add", h.HandleAdd)
	cartRoutes.Get("/get/:userId", h.HandleFetch)
	cartRoutes.Put("/update-cart", h.HandleUpdateQuantity)
	cartRoutes.Delete("/:userId/:productId", h.HandleRemove)
}

// ownsResource rejects requests whose userId does not match the
// authenticated identity. Carts are strictly per-user.
func ownsResource(c *fiber.Ctx, userID string) bool {
	authUserID, _ := c.Locals(middleware.LocalUserID).(string)
	return authUserID != "" && authUserID == userID
}

// CartItemRequest represents an add or update body.
type CartItemRequest struct {
	UserID    string `json:"userId" validate:"required"`
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// HandleAdd appends a product to the cart or increments its quantity.
func (h *CartHandler) HandleAdd(c *fiber.Ctx) error {
	var req CartItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing cart add body: %v", err)
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}
	if !ownsResource(c, req.UserID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "You can only modify your own cart",
		})
	}

	cart, err := h.service.AddToCart(req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    cart,
	})
}

// HandleFetch returns the cart joined with live product data.
func (h *CartHandler) HandleFetch(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if !ownsResource(c, userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "You can only view your own cart",
		})
	}

	view, err := h.service.FetchCart(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    view,
	})
}

// HandleUpdateQuantity sets a line's quantity; zero removes the line.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	var req CartItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing cart update body: %v", err)
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}
	if !ownsResource(c, req.UserID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "You can only modify your own cart",
		})
	}

	cart, err := h.service.UpdateQuantity(req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    cart,
	})
}

// HandleRemove deletes a line item from the cart.
func (h *CartHandler) HandleRemove(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if !ownsResource(c, userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "You can only modify your own cart",
		})
	}

	cart, err := h.service.RemoveFromCart(userID, c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    cart,
	})
}
