package handlers

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kartyax/tutorhub/database"
	"github.com/kartyax/tutorhub/models"
	"github.com/kartyax/tutorhub/notifications"
	"github.com/kartyax/tutorhub/services"
	"gorm.io/gorm"
)

type DashboardStatsResponse struct {
	TotalUsers         int64 `json:"total_users"`
	TotalTutors        int64 `json:"total_tutors"`
	PendingTutors      int64 `json:"pending_tutors"`
	TotalSessions      int64 `json:"total_sessions"`
	TotalRevenue       int64 `json:"total_revenue"`
	AdminFees          int64 `json:"admin_fees"`
	PendingWithdrawals int64 `json:"pending_withdrawals"`
	EscrowBalance      int64 `json:"escrow_balance"`
	PendingReports     int64 `json:"pending_reports"`
}

func GetDashboardStats(c *fiber.Ctx) error {
	var stats DashboardStatsResponse

	database.DB.Model(&models.User{}).Where("role != ?", models.RoleAdmin).Count(&stats.TotalUsers)
	database.DB.Model(&models.TutorProfile{}).Count(&stats.TotalTutors)
	database.DB.Model(&models.User{}).
		Where("role = ? AND verification_status = ?", models.RoleTutor, models.VerificationPending).
		Count(&stats.PendingTutors)
	database.DB.Model(&models.Session{}).Count(&stats.TotalSessions)

	database.DB.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").Scan(&stats.TotalRevenue)
	database.DB.Model(&models.Transaction{}).
		Where("status = ?", models.TransactionReleased).
		Select("COALESCE(SUM(admin_fee), 0)").Scan(&stats.AdminFees)
	database.DB.Model(&models.Transaction{}).
		Where("status = ?", models.TransactionHeld).
		Select("COALESCE(SUM(amount), 0)").Scan(&stats.EscrowBalance)

	database.DB.Model(&models.Withdrawal{}).Where("status = ?", models.WithdrawalPending).Count(&stats.PendingWithdrawals)
	database.DB.Model(&models.Report{}).Where("status = ?", models.ReportPending).Count(&stats.PendingReports)

	return c.JSON(fiber.Map{
		"success": true,
		"stats":   stats,
	})
}

func ListPendingTutors(c *fiber.Ctx) error {
	var users []models.User
	err := database.DB.
		Where("role = ? AND verification_status = ?", models.RoleTutor, models.VerificationPending).
		Order("created_at desc").
		Find(&users).Error
	if err != nil {
		return storeError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"tutors":  users,
	})
}

// VerifyTutor approves a pending tutor: the user and the catalog
// listing flip to verified together.
func VerifyTutor(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var user models.User
	if err := database.DB.First(&user, "id = ? AND role = ?", userID, models.RoleTutor).Error; err != nil {
		return notFound(c, "Tutor not found")
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ? AND verification_status = ?", user.ID, models.VerificationPending).
			Updates(map[string]interface{}{
				"verification_status": models.VerificationApproved,
				"verified":            true,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: tutor is not awaiting verification", services.ErrInvalidState)
		}

		return tx.Model(&models.TutorProfile{}).
			Where("user_id = ?", user.ID).
			Update("verified", true).Error
	})
	if err != nil {
		return fail(c, err)
	}

	go notifications.SendEmail(user.Name, user.Email,
		"Your Tutor Account Has Been Verified!",
		"<h1>Congratulations!</h1><p>Your tutor account has been verified. Students can now book sessions with you.</p>")

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Tutor verified",
	})
}

func RejectTutor(c *fiber.Ctx) error {
	userID := c.Params("userId")

	type Request struct {
		Reason string `json:"reason"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if req.Reason == "" {
		req.Reason = "Requirements not met"
	}

	var user models.User
	if err := database.DB.First(&user, "id = ? AND role = ?", userID, models.RoleTutor).Error; err != nil {
		return notFound(c, "Tutor not found")
	}

	res := database.DB.Model(&models.User{}).
		Where("id = ? AND verification_status = ?", user.ID, models.VerificationPending).
		Update("verification_status", models.VerificationRejected)
	if res.Error != nil {
		return storeError(c)
	}
	if res.RowsAffected == 0 {
		return fail(c, fmt.Errorf("%w: tutor is not awaiting verification", services.ErrInvalidState))
	}

	go notifications.SendEmail(user.Name, user.Email,
		"Update on Your Tutor Verification",
		fmt.Sprintf("<h1>Verification Update</h1><p>Your tutor verification was not approved.</p><p><b>Reason:</b> %s</p>", req.Reason))

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Tutor verification rejected",
	})
}

func GetAllUsers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	search := strings.TrimSpace(c.Query("search"))
	offset := (page - 1) * limit

	query := database.DB.Model(&models.User{}).Where("role != ?", models.RoleAdmin)
	if search != "" {
		term := "%" + search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", term, term)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	query.Order("created_at desc").Offset(offset).Limit(limit).Find(&users)

	return c.JSON(fiber.Map{
		"success": true,
		"users":   users,
		"meta": fiber.Map{
			"total_users":  total,
			"total_pages":  int(math.Ceil(float64(total) / float64(limit))),
			"current_page": page,
		},
	})
}

func GetAllSessions(c *fiber.Ctx) error {
	var sessions []models.Session
	err := database.DB.
		Preload("Student").
		Preload("Tutor").
		Order("created_at desc").
		Limit(100).
		Find(&sessions).Error
	if err != nil {
		return storeError(c)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"sessions": sessions,
	})
}

func GetAllTransactions(c *fiber.Ctx) error {
	var transactions []models.Transaction
	err := database.DB.
		Preload("Session").
		Preload("Student").
		Preload("Tutor").
		Order("created_at desc").
		Limit(100).
		Find(&transactions).Error
	if err != nil {
		return storeError(c)
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"transactions": transactions,
	})
}

func ListPendingWithdrawals(c *fiber.Ctx) error {
	var withdrawals []models.Withdrawal
	err := database.DB.
		Preload("Tutor").
		Where("status = ?", models.WithdrawalPending).
		Order("created_at desc").
		Find(&withdrawals).Error
	if err != nil {
		return storeError(c)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"withdrawals": withdrawals,
	})
}

func ProcessWithdrawal(c *fiber.Ctx) error {
	adminID := currentUserID(c)

	withdrawalID, err := uuid.Parse(c.Params("withdrawalId"))
	if err != nil {
		return badRequest(c, "Invalid withdrawal id")
	}

	if err := services.ProcessWithdrawal(database.DB, withdrawalID, adminID); err != nil {
		return fail(c, err)
	}

	go notifyTutorOfWithdrawal(withdrawalID,
		"Your Withdrawal Has Been Processed",
		"<h1>Withdrawal Processed</h1><p>Your withdrawal has been processed and the funds have been transferred to your bank account.</p>")

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Withdrawal processed",
	})
}

func RejectWithdrawal(c *fiber.Ctx) error {
	adminID := currentUserID(c)

	withdrawalID, err := uuid.Parse(c.Params("withdrawalId"))
	if err != nil {
		return badRequest(c, "Invalid withdrawal id")
	}

	type Request struct {
		Reason string `json:"reason" validate:"required"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := services.RejectWithdrawal(database.DB, withdrawalID, adminID, req.Reason); err != nil {
		return fail(c, err)
	}

	go notifyTutorOfWithdrawal(withdrawalID,
		"Update on Your Withdrawal Request",
		fmt.Sprintf("<h1>Withdrawal Rejected</h1><p>Your withdrawal request was rejected. The amount is back in your available balance.</p><p><b>Reason:</b> %s</p>", req.Reason))

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Withdrawal rejected",
	})
}

func ListPendingReports(c *fiber.Ctx) error {
	var reports []models.Report
	err := database.DB.
		Preload("Reporter").
		Preload("Reported").
		Where("status = ?", models.ReportPending).
		Order("created_at desc").
		Find(&reports).Error
	if err != nil {
		return storeError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"reports": reports,
	})
}

func ResolveReport(c *fiber.Ctx) error {
	adminID := currentUserID(c)

	reportID, err := uuid.Parse(c.Params("reportId"))
	if err != nil {
		return badRequest(c, "Invalid report id")
	}

	type Request struct {
		Resolution string `json:"resolution" validate:"required"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := services.ResolveReport(database.DB, reportID, adminID, req.Resolution); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Report resolved",
	})
}

func ReleaseEscrow(c *fiber.Ctx) error {
	transactionID, err := uuid.Parse(c.Params("transactionId"))
	if err != nil {
		return badRequest(c, "Invalid transaction id")
	}

	if err := services.ReleaseEscrow(database.DB, transactionID); err != nil {
		return fail(c, err)
	}

	go notifyTutorOfRelease(transactionID)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Escrow released to tutor",
	})
}

func RefundPayment(c *fiber.Ctx) error {
	transactionID, err := uuid.Parse(c.Params("transactionId"))
	if err != nil {
		return badRequest(c, "Invalid transaction id")
	}

	type Request struct {
		Reason string `json:"reason"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}

	if err := services.RefundTransaction(database.DB, transactionID, req.Reason); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Refund processed",
	})
}

func notifyTutorOfWithdrawal(withdrawalID uuid.UUID, subject, body string) {
	var withdrawal models.Withdrawal
	if err := database.DB.Preload("Tutor.User").First(&withdrawal, "id = ?", withdrawalID).Error; err != nil {
		return
	}
	notifications.SendEmail(withdrawal.Tutor.User.Name, withdrawal.Tutor.User.Email, subject, body)
}

func notifyTutorOfRelease(transactionID uuid.UUID) {
	var txn models.Transaction
	if err := database.DB.Preload("Tutor.User").First(&txn, "id = ?", transactionID).Error; err != nil {
		return
	}
	notifications.SendEmail(txn.Tutor.User.Name, txn.Tutor.User.Email,
		"Payment Released",
		fmt.Sprintf("<h1>Payment Released</h1><p>Rp %d from your completed session has been released to your balance and is available for withdrawal.</p>", txn.TutorAmount))
}
