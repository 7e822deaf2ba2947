package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kartyax/tutorhub/handlers"
	"github.com/kartyax/tutorhub/middleware"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.RegisterUser)
	auth.Post("/login", handlers.LoginUser)
	auth.Post("/quick-login", handlers.QuickLogin)
	auth.Post("/logout", handlers.Logout)
	auth.Get("/check", middleware.Protected(), handlers.CheckSession)
}
