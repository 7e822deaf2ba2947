package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/kartyax/tutorhub/database"
	"github.com/kartyax/tutorhub/models"
	"github.com/kartyax/tutorhub/notifications"
)

// SendSessionReminders emails both sides of every confirmed session
// starting roughly an hour from now. The window matches the cron
// cadence so a session is only picked up once.
func SendSessionReminders() {
	log.Println("Running job: SendSessionReminders...")

	upcoming, err := upcomingSessions(time.Now())
	if err != nil {
		log.Printf("Error checking for upcoming sessions: %v", err)
		return
	}

	for _, session := range upcoming {
		log.Printf("Sending reminder for session ID: %s", session.ID)

		subject := "Reminder: Your Session Starts in 1 Hour!"
		body := fmt.Sprintf(
			"<h1>Session Reminder</h1><p>Hi there,</p><p>This is a friendly reminder that your %s tutoring session starts at %s.</p>",
			session.Method,
			session.Date.Format(time.Kitchen),
		)

		go notifications.SendEmail(session.Student.Name, session.Student.Email, subject, body)
		go notifications.SendEmail(session.Tutor.User.Name, session.Tutor.User.Email, subject, body)
	}
}

// upcomingSessions selects the confirmed sessions starting 60 to 65
// minutes after now, with both parties preloaded for the emails.
func upcomingSessions(now time.Time) ([]models.Session, error) {
	lowerBound := now.Add(60 * time.Minute)
	upperBound := now.Add(65 * time.Minute)

	var upcoming []models.Session
	err := database.DB.
		Preload("Student").
		Preload("Tutor.User").
		Where("status = ? AND date BETWEEN ? AND ?", models.SessionConfirmed, lowerBound, upperBound).
		Find(&upcoming).Error
	return upcoming, err
}
