package handlers

import (
	"errors"
	"fmt"
	"log"

	"inventory/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// writeError maps a service error onto a status code and JSON body.
func writeError(c *fiber.Ctx, err error, action string) error {
	var verr *models.ValidationError
	var nerr *models.NotFoundError
	var zerr *models.AlreadyZeroError

	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  fiber.Map{verr.Field: verr.Reason},
		})
	case errors.As(err, &nerr):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message":  fmt.Sprintf("Product with ID %d not found", nerr.ID),
			"affected": 0,
		})
	case errors.As(err, &zerr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message":  "Time to restock",
			"id":       zerr.ID,
			"quantity": 0,
		})
	}

	log.Printf("Error trying to %s: %v", action, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not " + action,
		"error":   err.Error(),
	})
}

// validationFailed reports struct-tag validation errors per field.
func validationFailed(c *fiber.Ctx, err error) error {
	errorMessages := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
