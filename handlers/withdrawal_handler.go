package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kartyax/tutorhub/database"
	"github.com/kartyax/tutorhub/models"
	"github.com/kartyax/tutorhub/services"
)

type WithdrawalRequest struct {
	Amount        int64  `json:"amount" validate:"required,gt=0"`
	BankName      string `json:"bank_name" validate:"required"`
	AccountNumber string `json:"account_number" validate:"required"`
	AccountName   string `json:"account_name" validate:"required"`
}

func RequestWithdrawal(c *fiber.Ctx) error {
	tutorUserID := currentUserID(c)

	var req WithdrawalRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	withdrawal, err := services.RequestWithdrawal(database.DB, tutorUserID, services.WithdrawalParams{
		Amount:        req.Amount,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		AccountName:   req.AccountName,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":    true,
		"message":    "Withdrawal request submitted",
		"withdrawal": withdrawal,
	})
}

func GetMyWithdrawals(c *fiber.Ctx) error {
	profile, err := myTutorProfile(c)
	if err != nil {
		return notFound(c, "Tutor profile not found")
	}

	var withdrawals []models.Withdrawal
	dbErr := database.DB.
		Where("tutor_id = ?", profile.ID).
		Order("created_at desc").
		Find(&withdrawals).Error
	if dbErr != nil {
		return storeError(c)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"withdrawals": withdrawals,
	})
}
