package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kartyax/tutorhub/database"
	"github.com/kartyax/tutorhub/services"
)

type CreateReportRequest struct {
	ReportedID string `json:"reported_id" validate:"required,uuid"`
	Type       string `json:"type" validate:"required"`
	Reason     string `json:"reason" validate:"required"`
}

func CreateReport(c *fiber.Ctx) error {
	reporterID := currentUserID(c)

	var req CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	reportedID, _ := uuid.Parse(req.ReportedID)

	report, err := services.CreateReport(database.DB, reporterID, reportedID, req.Type, req.Reason)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Report submitted, our team will review it",
		"report":  report,
	})
}
