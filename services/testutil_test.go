package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kartyax/tutorhub/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.TutorProfile{},
		&models.Session{},
		&models.Transaction{},
		&models.Withdrawal{},
		&models.Report{},
	))

	return db
}

func seedStudent(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := models.User{
		Name:               "Budi Santoso",
		Email:              uuid.NewString() + "@ui.ac.id",
		Password:           "irrelevant-hash",
		NIM:                "1906123456",
		University:         "Universitas Indonesia",
		Role:               models.RoleStudent,
		VerificationStatus: models.VerificationApproved,
		Verified:           true,
		IsActive:           true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedTutor(t *testing.T, db *gorm.DB, price int64) (*models.User, *models.TutorProfile) {
	t.Helper()

	user := models.User{
		Name:               "Siti Rahma",
		Email:              uuid.NewString() + "@ui.ac.id",
		Password:           "irrelevant-hash",
		University:         "Universitas Indonesia",
		Role:               models.RoleTutor,
		VerificationStatus: models.VerificationApproved,
		Verified:           true,
		IsActive:           true,
	}
	require.NoError(t, db.Create(&user).Error)

	profile := models.TutorProfile{
		UserID:     user.ID,
		Name:       user.Name,
		University: user.University,
		Subject:    "Calculus",
		Lecturer:   "Dr. Wijaya",
		Price:      price,
		Verified:   true,
	}
	require.NoError(t, db.Create(&profile).Error)
	return &user, &profile
}

func seedSession(t *testing.T, db *gorm.DB, student *models.User, tutor *models.TutorProfile, status string) *models.Session {
	t.Helper()

	session := models.Session{
		StudentID:     student.ID,
		TutorID:       tutor.ID,
		Date:          time.Now().Add(48 * time.Hour),
		Duration:      1,
		Method:        "online",
		Status:        status,
		Price:         tutor.Price,
		PaymentMethod: "gopay",
		PaymentStatus: models.PaymentPending,
	}
	require.NoError(t, db.Create(&session).Error)
	return &session
}

func seedHeldTransaction(t *testing.T, db *gorm.DB, session *models.Session, adminFee int64) *models.Transaction {
	t.Helper()

	txn := models.Transaction{
		SessionID:   session.ID,
		StudentID:   session.StudentID,
		TutorID:     session.TutorID,
		Amount:      session.Price,
		AdminFee:    adminFee,
		TutorAmount: session.Price - adminFee,
		Status:      models.TransactionHeld,
	}
	require.NoError(t, db.Create(&txn).Error)
	return &txn
}
