package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kartyax/tutorhub/database"
	"github.com/kartyax/tutorhub/models"
)

// ListTutors is the public catalog: all listings with the caller's
// sort preference.
func ListTutors(c *fiber.Ctx) error {
	order := "rating desc"
	switch c.Query("sort", "rating") {
	case "price-low":
		order = "price asc"
	case "price-high":
		order = "price desc"
	case "sessions":
		order = "sessions_completed desc"
	}

	var tutors []models.TutorProfile
	if err := database.DB.Order(order).Find(&tutors).Error; err != nil {
		return storeError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"tutors":  tutors,
	})
}

func GetTutorDetail(c *fiber.Ctx) error {
	var tutor models.TutorProfile
	if err := database.DB.First(&tutor, "id = ?", c.Params("tutorId")).Error; err != nil {
		return notFound(c, "Tutor not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"tutor":   tutor,
	})
}

type FilterTutorsRequest struct {
	Subject    string  `json:"subject"`
	University string  `json:"university"`
	MinRating  float32 `json:"min_rating"`
	MaxPrice   int64   `json:"max_price"`
}

func FilterTutors(c *fiber.Ctx) error {
	var req FilterTutorsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if req.MaxPrice <= 0 {
		req.MaxPrice = 500000
	}

	query := database.DB.Where("price <= ?", req.MaxPrice)
	if req.Subject != "" {
		query = query.Where("subject LIKE ?", "%"+req.Subject+"%")
	}
	if req.University != "" {
		query = query.Where("university = ?", req.University)
	}
	if req.MinRating > 0 {
		query = query.Where("rating >= ?", req.MinRating)
	}

	var tutors []models.TutorProfile
	if err := query.Order("rating desc").Find(&tutors).Error; err != nil {
		return storeError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"tutors":  tutors,
		"count":   len(tutors),
	})
}
