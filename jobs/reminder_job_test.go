package jobs

import (
	"testing"
	"time"

	"github.com/kartyax/tutorhub/database"
	"github.com/kartyax/tutorhub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestUpcomingSessionsWindow(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.TutorProfile{}, &models.Session{}))
	database.DB = db

	now := time.Now()
	inWindow := models.Session{
		Date:     now.Add(62 * time.Minute),
		Duration: 1,
		Method:   "online",
		Status:   models.SessionConfirmed,
	}
	tooFarOut := models.Session{
		Date:     now.Add(3 * time.Hour),
		Duration: 1,
		Method:   "online",
		Status:   models.SessionConfirmed,
	}
	pendingInWindow := models.Session{
		Date:     now.Add(62 * time.Minute),
		Duration: 1,
		Method:   "online",
		Status:   models.SessionPending,
	}
	require.NoError(t, db.Create(&inWindow).Error)
	require.NoError(t, db.Create(&tooFarOut).Error)
	require.NoError(t, db.Create(&pendingInWindow).Error)

	upcoming, err := upcomingSessions(now)
	require.NoError(t, err)
	require.Len(t, upcoming, 1, "only confirmed sessions inside the window get a reminder")
	assert.Equal(t, inWindow.ID, upcoming[0].ID)

	// With no email client configured the job degrades to a no-op send.
	SendSessionReminders()
}
