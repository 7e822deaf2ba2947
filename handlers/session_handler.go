package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kartyax/tutorhub/database"
	"github.com/kartyax/tutorhub/models"
	"github.com/kartyax/tutorhub/notifications"
	"github.com/kartyax/tutorhub/services"
)

type CreateSessionRequest struct {
	TutorID       string `json:"tutor_id" validate:"required,uuid"`
	StartTime     string `json:"start_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Duration      int    `json:"duration" validate:"omitempty,min=1,max=8"`
	Method        string `json:"method" validate:"omitempty,oneof=online offline"`
	Notes         string `json:"notes"`
	PaymentMethod string `json:"payment_method"`
}

func CreateSession(c *fiber.Ctx) error {
	studentID := currentUserID(c)

	var req CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	tutorID, _ := uuid.Parse(req.TutorID)
	date, _ := time.Parse(time.RFC3339, req.StartTime)

	session, err := services.CreateSession(database.DB, services.CreateSessionParams{
		StudentID:     studentID,
		TutorID:       tutorID,
		Date:          date,
		Duration:      req.Duration,
		Method:        req.Method,
		Notes:         req.Notes,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Booking created",
		"session": session,
	})
}

func GetMySessions(c *fiber.Ctx) error {
	studentID := currentUserID(c)

	var sessions []models.Session
	err := database.DB.
		Preload("Tutor").
		Where("student_id = ?", studentID).
		Order("date desc").
		Find(&sessions).Error
	if err != nil {
		return storeError(c)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"sessions": sessions,
	})
}

func GetSessionDetail(c *fiber.Ctx) error {
	studentID := currentUserID(c)

	var session models.Session
	err := database.DB.
		Preload("Tutor").
		Where("id = ? AND student_id = ?", c.Params("sessionId"), studentID).
		First(&session).Error
	if err != nil {
		return notFound(c, "Session not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"session": session,
	})
}

func CancelSession(c *fiber.Ctx) error {
	studentID := currentUserID(c)

	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return badRequest(c, "Invalid session id")
	}

	if err := services.CancelSession(database.DB, sessionID, studentID); err != nil {
		return fail(c, err)
	}

	go notifyTutorOfCancellation(sessionID)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Session cancelled",
	})
}

func notifyTutorOfCancellation(sessionID uuid.UUID) {
	var session models.Session
	if err := database.DB.Preload("Tutor.User").First(&session, "id = ?", sessionID).Error; err != nil {
		return
	}
	notifications.SendEmail(session.Tutor.User.Name, session.Tutor.User.Email,
		"A Session Was Cancelled",
		"<h1>Session Cancelled</h1><p>A student has cancelled their session with you. Check your dashboard for details.</p>")
}
