package middleware

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	config "github.com/kartyax/tutorhub/configs"
)

func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(config.Config("JWT_SECRET")),
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"kind":    "unauthorized",
		"message": "Missing or invalid token",
	})
}

func AdminRequired() fiber.Handler {
	return roleRequired("admin")
}

func TutorRequired() fiber.Handler {
	return roleRequired("tutor")
}

func roleRequired(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Locals("user").(*jwt.Token)
		claims := token.Claims.(jwt.MapClaims)

		if claims["role"] != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"kind":    "forbidden",
				"message": "Forbidden: " + role + " access required",
			})
		}
		return c.Next()
	}
}
