package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	config "github.com/kartyax/tutorhub/configs"
	"github.com/kartyax/tutorhub/database"
	"github.com/kartyax/tutorhub/models"
	"github.com/kartyax/tutorhub/notifications"
	"github.com/kartyax/tutorhub/services"
)

type RegisterRequest struct {
	Name            string `json:"name" validate:"required,min=2"`
	Email           string `json:"email" validate:"required,email"`
	NIM             string `json:"nim"`
	University      string `json:"university"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
	Role            string `json:"role" validate:"omitempty,oneof=student tutor"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func RegisterUser(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	user, err := services.RegisterUser(database.DB, services.RegisterParams{
		Name:            req.Name,
		Email:           req.Email,
		NIM:             req.NIM,
		University:      req.University,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		Role:            req.Role,
	})
	if err != nil {
		return fail(c, err)
	}

	go notifications.SendEmail(user.Name, user.Email, "Welcome to TutorHub!",
		"<h1>Welcome!</h1><p>Your account has been created. Please log in to get started.</p>")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Registration successful, please log in",
		"user":    user,
	})
}

func LoginUser(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	user, err := services.Authenticate(database.DB, req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	t, err := issueToken(user)
	if err != nil {
		return storeError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"token":   t,
		"user":    user,
	})
}

// QuickLogin signs in as the first account of the requested role. Demo
// environments only; guarded by the DEMO_MODE flag.
func QuickLogin(c *fiber.Ctx) error {
	if config.Config("DEMO_MODE") != "true" {
		return notFound(c, "Not available")
	}

	type Request struct {
		Role string `json:"role" validate:"required,oneof=student tutor admin"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	var user models.User
	if err := database.DB.Where("role = ?", req.Role).First(&user).Error; err != nil {
		return notFound(c, "Demo user not found")
	}

	t, err := issueToken(&user)
	if err != nil {
		return storeError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Quick login successful",
		"token":   t,
		"user":    user,
	})
}

// Logout is a stateless acknowledgement; the client discards its
// token.
func Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logout successful",
	})
}

func CheckSession(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.JSON(fiber.Map{
			"success":       true,
			"authenticated": false,
		})
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"authenticated": true,
		"user":          user,
	})
}

func issueToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    user.Role,
		"exp":     time.Now().Add(time.Hour * 72).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Config("JWT_SECRET")))
}
