package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kartyax/tutorhub/handlers"
	"github.com/kartyax/tutorhub/middleware"
)

func ReportRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	reports := api.Group("/reports", middleware.Protected())
	reports.Post("", handlers.CreateReport)
}
