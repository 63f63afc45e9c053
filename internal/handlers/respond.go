package handlers

import (
	"fmt"
	"log"

	"walkup/internal/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondError translates a service error into the JSON envelope with the
// status code its kind maps to. Internal detail is logged, never returned.
func respondError(c *fiber.Ctx, err error) error {
	if apperr.KindOf(err) == apperr.KindInternal || apperr.KindOf(err) == apperr.KindProvider {
		log.Printf("%s %s failed: %v", c.Method(), c.Path(), err)
	}
	return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{
		"success": false,
		"message": apperr.Message(err),
	})
}

// respondValidation maps validator failures to a per-field error map, the way
// every handler reports bad request bodies.
func respondValidation(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
