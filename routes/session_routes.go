package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kartyax/tutorhub/handlers"
	"github.com/kartyax/tutorhub/middleware"
)

func SessionRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	sessions := api.Group("/sessions", middleware.Protected())
	sessions.Get("/me", handlers.GetMySessions)
	sessions.Post("", handlers.CreateSession)
	sessions.Get("/:sessionId", handlers.GetSessionDetail)
	sessions.Post("/:sessionId/cancel", handlers.CancelSession)
}
