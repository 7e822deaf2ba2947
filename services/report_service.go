package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kartyax/tutorhub/models"
	"gorm.io/gorm"
)

// CreateReport files a user report into the moderation queue.
func CreateReport(db *gorm.DB, reporterID, reportedID uuid.UUID, reportType, reason string) (*models.Report, error) {
	if reportType == "" || reason == "" {
		return nil, fmt.Errorf("%w: type and reason are required", ErrValidation)
	}
	if reporterID == reportedID {
		return nil, fmt.Errorf("%w: you cannot report yourself", ErrValidation)
	}

	var reported models.User
	if err := db.First(&reported, "id = ?", reportedID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: reported user not found", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	report := models.Report{
		ReporterID: reporterID,
		ReportedID: reportedID,
		Type:       reportType,
		Reason:     reason,
		Status:     models.ReportPending,
	}
	if err := db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return &report, nil
}

// ResolveReport closes a pending report with the admin's notes. There
// is no re-open transition.
func ResolveReport(db *gorm.DB, reportID, adminID uuid.UUID, notes string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var report models.Report
		if err := tx.First(&report, "id = ?", reportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: report not found", ErrNotFound)
			}
			return fmt.Errorf("%w: %v", ErrStore, err)
		}

		now := time.Now()
		res := tx.Model(&models.Report{}).
			Where("id = ? AND status = ?", report.ID, models.ReportPending).
			Updates(map[string]interface{}{
				"status":           models.ReportResolved,
				"resolution_notes": notes,
				"resolved_by":      &adminID,
				"resolved_at":      &now,
			})
		if res.Error != nil {
			return fmt.Errorf("%w: %v", ErrStore, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: report has already been resolved", ErrInvalidState)
		}
		return nil
	})
}
