package handlers

import (
	"log"
	"strings"

	"walkup/internal/models"
	"walkup/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the product catalog, both the shop
// read side and the admin write side.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterShopRoutes registers the public catalog read routes.
func (h *ProductHandler) RegisterShopRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/get", h.HandleGetFiltered)
	productRoutes.Get("/get/:id", h.HandleGetByID)
}

// RegisterAdminRoutes registers the catalog CRUD routes.
func (h *ProductHandler) RegisterAdminRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/get", h.HandleGetAll)
	productRoutes.Post("/add", h.HandleAdd)
	productRoutes.Put("/edit/:id", h.HandleEdit)
	productRoutes.Delete("/delete/:id", h.HandleDelete)
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

// HandleGetFiltered lists products matching the category/brand query filters
// in the requested sort order.
func (h *ProductHandler) HandleGetFiltered(c *fiber.Ctx) error {
	categories := splitCSV(c.Query("category"))
	brands := splitCSV(c.Query("brand"))
	sortBy := c.Query("sortBy")

	products, err := h.service.GetFilteredProducts(categories, brands, sortBy)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    products,
	})
}

// HandleGetByID returns a single product.
func (h *ProductHandler) HandleGetByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    product,
	})
}

// HandleGetAll lists the whole catalog for the admin dashboard.
func (h *ProductHandler) HandleGetAll(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    products,
	})
}

// HandleAdd creates a new product.
func (h *ProductHandler) HandleAdd(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing product body: %v", err)
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(product); err != nil {
		return respondValidation(c, err)
	}

	if err := h.service.CreateProduct(&product); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    product,
	})
}

// HandleEdit overwrites only the fields present in the request body.
func (h *ProductHandler) HandleEdit(c *fiber.Ctx) error {
	var update services.ProductUpdate
	if err := c.BodyParser(&update); err != nil {
		log.Printf("Error parsing product update body: %v", err)
		return badRequest(c, "Invalid request body")
	}

	product, err := h.service.UpdateProduct(c.Params("id"), update)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    product,
	})
}

// HandleDelete removes a product from the catalog.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product deleted successfully",
	})
}
