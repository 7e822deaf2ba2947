package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kartyax/tutorhub/handlers"
	"github.com/kartyax/tutorhub/middleware"
)

func TutorRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// Public catalog.
	api.Get("/tutors", handlers.ListTutors)
	api.Post("/tutors/filter", handlers.FilterTutors)
	api.Get("/tutors/:tutorId", handlers.GetTutorDetail)

	tutor := api.Group("/tutor", middleware.Protected(), middleware.TutorRequired())
	tutor.Get("/sessions", handlers.GetTutorSessions)
	tutor.Post("/sessions/:sessionId/confirm", handlers.ConfirmSession)
	tutor.Post("/sessions/:sessionId/reject", handlers.RejectSession)
	tutor.Post("/sessions/:sessionId/complete", handlers.CompleteSession)
	tutor.Get("/stats", handlers.GetTutorStats)
	tutor.Get("/earnings", handlers.GetTutorEarnings)
	tutor.Put("/profile/me", handlers.UpdateMyTutorProfile)

	tutor.Post("/withdrawals", handlers.RequestWithdrawal)
	tutor.Get("/withdrawals", handlers.GetMyWithdrawals)
}
