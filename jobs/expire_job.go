package jobs

import (
	"log"
	"time"

	"github.com/kartyax/tutorhub/database"
	"github.com/kartyax/tutorhub/models"
)

// ExpireStalePendingSessions cancels bookings the tutor never acted on:
// any session still pending once its scheduled date has passed. Only
// pending rows are touched, so a concurrent confirm wins.
func ExpireStalePendingSessions() {
	log.Println("Running job: ExpireStalePendingSessions...")

	res := database.DB.Model(&models.Session{}).
		Where("status = ? AND date < ?", models.SessionPending, time.Now()).
		Update("status", models.SessionCancelled)

	if res.Error != nil {
		log.Printf("Error expiring stale pending sessions: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("Expired %d stale pending sessions", res.RowsAffected)
	}
}
