package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kartyax/tutorhub/database"
	"github.com/kartyax/tutorhub/models"
)

type UpdateProfileRequest struct {
	Name       *string `json:"name"`
	University *string `json:"university"`
	NIM        *string `json:"nim"`
	Avatar     *string `json:"avatar"`
}

func GetProfile(c *fiber.Ctx) error {
	var user models.User
	if err := database.DB.First(&user, "id = ?", currentUserID(c)).Error; err != nil {
		return notFound(c, "User not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

func UpdateProfile(c *fiber.Ctx) error {
	var user models.User
	if err := database.DB.First(&user, "id = ?", currentUserID(c)).Error; err != nil {
		return notFound(c, "User not found")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.University != nil {
		user.University = *req.University
	}
	if req.NIM != nil {
		user.NIM = *req.NIM
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}

	if err := database.DB.Save(&user).Error; err != nil {
		return storeError(c)
	}

	// Tutors carry their display fields on the listing row as well.
	if user.Role == models.RoleTutor {
		database.DB.Model(&models.TutorProfile{}).
			Where("user_id = ?", user.ID).
			Updates(map[string]interface{}{
				"name":       user.Name,
				"university": user.University,
				"avatar":     user.Avatar,
			})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile updated",
		"user":    user,
	})
}

// GetMyStats reports the student dashboard counters.
func GetMyStats(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var total, completed, pending int64
	database.DB.Model(&models.Session{}).Where("student_id = ?", userID).Count(&total)
	database.DB.Model(&models.Session{}).Where("student_id = ? AND status = ?", userID, models.SessionCompleted).Count(&completed)
	database.DB.Model(&models.Session{}).Where("student_id = ? AND status = ?", userID, models.SessionPending).Count(&pending)

	return c.JSON(fiber.Map{
		"success": true,
		"stats": fiber.Map{
			"total":     total,
			"completed": completed,
			"pending":   pending,
		},
	})
}
