package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kartyax/tutorhub/handlers"
	"github.com/kartyax/tutorhub/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/dashboard-stats", handlers.GetDashboardStats)

	admin.Get("/tutors/pending", handlers.ListPendingTutors)
	admin.Post("/tutors/:userId/verify", handlers.VerifyTutor)
	admin.Post("/tutors/:userId/reject", handlers.RejectTutor)

	admin.Get("/users", handlers.GetAllUsers)
	admin.Get("/sessions", handlers.GetAllSessions)
	admin.Get("/transactions", handlers.GetAllTransactions)

	admin.Get("/withdrawals/pending", handlers.ListPendingWithdrawals)
	admin.Post("/withdrawals/:withdrawalId/process", handlers.ProcessWithdrawal)
	admin.Post("/withdrawals/:withdrawalId/reject", handlers.RejectWithdrawal)

	admin.Get("/reports/pending", handlers.ListPendingReports)
	admin.Post("/reports/:reportId/resolve", handlers.ResolveReport)

	admin.Post("/escrow/:transactionId/release", handlers.ReleaseEscrow)
	admin.Post("/escrow/:transactionId/refund", handlers.RefundPayment)
}
