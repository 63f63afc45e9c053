package handlers

import (
	"log"

	"walkup/internal/models"
	"walkup/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AddressHandler handles HTTP requests for the address book.
type AddressHandler struct {
	service  *services.AddressService
	validate *validator.Validate
}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler(service *services.AddressService) *AddressHandler {
	return &AddressHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the address routes.
func (h *AddressHandler) RegisterRoutes(router fiber.Router) {
	addressRoutes := router.Group("/address")
	addressRoutes.Post("/add", h.HandleAdd)
	addressRoutes.Get("/get/:userId", h.HandleList)
	addressRoutes.Put("/update/:userId/:addressId", h.HandleUpdate)
	addressRoutes.Delete("/delete/:userId/:addressId", h.HandleDelete)
}

// HandleAdd stores a new address, up to the per-user cap.
func (h *AddressHandler) HandleAdd(c *fiber.Ctx) error {
	var address models.Address
	if err := c.BodyParser(&address); err != nil {
		log.Printf("Error parsing address body: %v", err)
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(address); err != nil {
		return respondValidation(c, err)
	}
	if !ownsResource(c, address.UserID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "You can only manage your own addresses",
		})
	}

	created, err := h.service.AddAddress(&address)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    created,
	})
}

// HandleList returns the user's address book.
func (h *AddressHandler) HandleList(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if !ownsResource(c, userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "You can only view your own addresses",
		})
	}

	addresses, err := h.service.ListAddresses(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    addresses,
	})
}

// HandleUpdate overwrites an address the user owns.
func (h *AddressHandler) HandleUpdate(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if !ownsResource(c, userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "You can only manage your own addresses",
		})
	}

	var update models.Address
	if err := c.BodyParser(&update); err != nil {
		log.Printf("Error parsing address update body: %v", err)
		return badRequest(c, "Invalid request body")
	}

	address, err := h.service.UpdateAddress(userID, c.Params("addressId"), &update)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    address,
	})
}

// HandleDelete removes an address the user owns.
func (h *AddressHandler) HandleDelete(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if !ownsResource(c, userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "You can only manage your own addresses",
		})
	}

	if err := h.service.DeleteAddress(userID, c.Params("addressId")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Address deleted successfully",
	})
}
