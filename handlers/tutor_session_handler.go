package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	config "github.com/kartyax/tutorhub/configs"
	"github.com/kartyax/tutorhub/database"
	"github.com/kartyax/tutorhub/models"
	"github.com/kartyax/tutorhub/notifications"
	"github.com/kartyax/tutorhub/services"
)

const defaultPlatformFeeRate = 0.1

func platformFeeRate() float64 {
	rate, err := strconv.ParseFloat(config.Config("PLATFORM_FEE_RATE"), 64)
	if err != nil || rate < 0 || rate >= 1 {
		return defaultPlatformFeeRate
	}
	return rate
}

// GetTutorSessions lists incoming bookings for the signed-in tutor.
func GetTutorSessions(c *fiber.Ctx) error {
	profile, err := myTutorProfile(c)
	if err != nil {
		return notFound(c, "Tutor profile not found")
	}

	var sessions []models.Session
	dbErr := database.DB.
		Preload("Student").
		Where("tutor_id = ?", profile.ID).
		Order("date desc").
		Find(&sessions).Error
	if dbErr != nil {
		return storeError(c)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"sessions": sessions,
	})
}

func ConfirmSession(c *fiber.Ctx) error {
	tutorUserID := currentUserID(c)

	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return badRequest(c, "Invalid session id")
	}

	txn, err := services.ConfirmSession(database.DB, sessionID, tutorUserID, platformFeeRate())
	if err != nil {
		return fail(c, err)
	}

	go notifyStudent(sessionID, "Your Session is Confirmed!",
		"<h1>Session Confirmed</h1><p>Your tutor has confirmed the session. Payment is held in escrow until the session completes.</p>")

	return c.JSON(fiber.Map{
		"success":     true,
		"message":     "Session confirmed",
		"transaction": txn,
	})
}

func RejectSession(c *fiber.Ctx) error {
	tutorUserID := currentUserID(c)

	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return badRequest(c, "Invalid session id")
	}

	if err := services.RejectSession(database.DB, sessionID, tutorUserID); err != nil {
		return fail(c, err)
	}

	go notifyStudent(sessionID, "Your Session Was Declined",
		"<h1>Session Declined</h1><p>The tutor is unable to take this session. Any held payment will be refunded by our team.</p>")

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Session rejected",
	})
}

func CompleteSession(c *fiber.Ctx) error {
	tutorUserID := currentUserID(c)

	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return badRequest(c, "Invalid session id")
	}

	if err := services.CompleteSession(database.DB, sessionID, tutorUserID); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Session completed",
	})
}

// GetTutorStats reports the tutor dashboard counters: queue sizes,
// rating, and gross earnings of confirmed and completed sessions.
func GetTutorStats(c *fiber.Ctx) error {
	profile, err := myTutorProfile(c)
	if err != nil {
		return notFound(c, "Tutor profile not found")
	}

	var total, pending, confirmed, completed int64
	database.DB.Model(&models.Session{}).Where("tutor_id = ?", profile.ID).Count(&total)
	database.DB.Model(&models.Session{}).Where("tutor_id = ? AND status = ?", profile.ID, models.SessionPending).Count(&pending)
	database.DB.Model(&models.Session{}).Where("tutor_id = ? AND status = ?", profile.ID, models.SessionConfirmed).Count(&confirmed)
	database.DB.Model(&models.Session{}).Where("tutor_id = ? AND status = ?", profile.ID, models.SessionCompleted).Count(&completed)

	var earnings int64
	database.DB.Model(&models.Session{}).
		Where("tutor_id = ? AND status IN ?", profile.ID, []string{models.SessionConfirmed, models.SessionCompleted}).
		Select("COALESCE(SUM(price), 0)").
		Scan(&earnings)

	return c.JSON(fiber.Map{
		"success": true,
		"stats": fiber.Map{
			"total":     total,
			"pending":   pending,
			"confirmed": confirmed,
			"completed": completed,
			"rating":    profile.Rating,
			"reviews":   profile.Reviews,
			"earnings":  earnings,
		},
	})
}

// GetTutorEarnings reports the withdrawable balance: released escrow
// payouts minus pending and completed withdrawals.
func GetTutorEarnings(c *fiber.Ctx) error {
	profile, err := myTutorProfile(c)
	if err != nil {
		return notFound(c, "Tutor profile not found")
	}

	balance, balErr := services.AvailableBalance(database.DB, profile.ID)
	if balErr != nil {
		return fail(c, balErr)
	}

	var released int64
	database.DB.Model(&models.Transaction{}).
		Where("tutor_id = ? AND status = ?", profile.ID, models.TransactionReleased).
		Select("COALESCE(SUM(tutor_amount), 0)").
		Scan(&released)

	return c.JSON(fiber.Map{
		"success":           true,
		"available_balance": balance,
		"lifetime_earnings": released,
	})
}

type UpdateTutorProfileRequest struct {
	Subject  *string `json:"subject"`
	Lecturer *string `json:"lecturer"`
	Price    *int64  `json:"price" validate:"omitempty,gt=0"`
	Bio      *string `json:"bio"`
}

func UpdateMyTutorProfile(c *fiber.Ctx) error {
	profile, err := myTutorProfile(c)
	if err != nil {
		return notFound(c, "Tutor profile not found")
	}

	var req UpdateTutorProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if req.Subject != nil {
		profile.Subject = *req.Subject
	}
	if req.Lecturer != nil {
		profile.Lecturer = *req.Lecturer
	}
	if req.Price != nil {
		profile.Price = *req.Price
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}

	if err := database.DB.Save(profile).Error; err != nil {
		return storeError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile updated",
		"tutor":   profile,
	})
}

func myTutorProfile(c *fiber.Ctx) (*models.TutorProfile, error) {
	var profile models.TutorProfile
	if err := database.DB.First(&profile, "user_id = ?", currentUserID(c)).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func notifyStudent(sessionID uuid.UUID, subject, body string) {
	var session models.Session
	if err := database.DB.Preload("Student").First(&session, "id = ?", sessionID).Error; err != nil {
		return
	}
	notifications.SendEmail(session.Student.Name, session.Student.Email, subject, body)
}
