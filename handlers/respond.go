package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/kartyax/tutorhub/services"
)

var validate = validator.New()

// fail maps a service-layer error onto the response envelope. Every
// failure carries a stable machine-readable kind next to the
// human-readable message.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	kind := "store_error"

	switch {
	case errors.Is(err, services.ErrUnauthorized):
		status, kind = fiber.StatusUnauthorized, "unauthorized"
	case errors.Is(err, services.ErrForbidden):
		status, kind = fiber.StatusForbidden, "forbidden"
	case errors.Is(err, services.ErrNotFound):
		status, kind = fiber.StatusNotFound, "not_found"
	case errors.Is(err, services.ErrValidation):
		status, kind = fiber.StatusBadRequest, "validation"
	case errors.Is(err, services.ErrInvalidState):
		status, kind = fiber.StatusConflict, "invalid_state"
	}

	// Raw store errors may carry driver or SQL detail; keep that in the
	// server log and hand the client a generic message.
	message := err.Error()
	if kind == "store_error" {
		log.Printf("[ERROR] %v", err)
		message = "Database error"
	}

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"kind":    kind,
		"message": message,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"kind":    "validation",
		"message": message,
	})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"kind":    "not_found",
		"message": message,
	})
}

func storeError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"kind":    "store_error",
		"message": "Database error",
	})
}

// currentUserID pulls the authenticated user id out of the JWT the
// Protected middleware verified.
func currentUserID(c *fiber.Ctx) uuid.UUID {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	id, _ := uuid.Parse(claims["user_id"].(string))
	return id
}
