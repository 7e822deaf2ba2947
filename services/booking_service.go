package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kartyax/tutorhub/models"
	"gorm.io/gorm"
)

// Booking lifecycle. Legal edges:
//
//	pending   -> confirmed (tutor)   -> completed (tutor)
//	pending   -> cancelled (student or tutor reject)
//	confirmed -> cancelled (student or tutor reject)
//	held txn  -> refunded  (admin, see escrow_service.go) which also
//	             moves the session to refunded
//
// Every transition is a conditional UPDATE guarded by the expected
// prior status, so a concurrent duplicate request loses the race and
// reports ErrInvalidState instead of double-applying.

type CreateSessionParams struct {
	StudentID     uuid.UUID
	TutorID       uuid.UUID
	Date          time.Time
	Duration      int
	Method        string
	Notes         string
	PaymentMethod string
}

func CreateSession(db *gorm.DB, p CreateSessionParams) (*models.Session, error) {
	if p.TutorID == uuid.Nil || p.Date.IsZero() {
		return nil, fmt.Errorf("%w: tutor id and date are required", ErrValidation)
	}
	if p.Duration < 1 {
		p.Duration = 1
	}
	if p.Method == "" {
		p.Method = "online"
	}

	var tutor models.TutorProfile
	if err := db.First(&tutor, "id = ?", p.TutorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: tutor not found", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	session := models.Session{
		StudentID:     p.StudentID,
		TutorID:       tutor.ID,
		Date:          p.Date,
		Duration:      p.Duration,
		Method:        p.Method,
		Status:        models.SessionPending,
		Notes:         p.Notes,
		Price:         tutor.Price * int64(p.Duration),
		PaymentMethod: p.PaymentMethod,
		PaymentStatus: models.PaymentPending,
	}
	if err := db.Create(&session).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	return &session, nil
}

// ConfirmSession moves a pending session to confirmed and opens its
// escrow transaction with the fee split computed from feeRate. Both
// writes happen in one database transaction.
func ConfirmSession(db *gorm.DB, sessionID, tutorUserID uuid.UUID, feeRate float64) (*models.Transaction, error) {
	var txn models.Transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		session, err := sessionOwnedByTutor(tx, sessionID, tutorUserID)
		if err != nil {
			return err
		}

		res := tx.Model(&models.Session{}).
			Where("id = ? AND status = ?", session.ID, models.SessionPending).
			Updates(map[string]interface{}{
				"status":         models.SessionConfirmed,
				"payment_status": models.PaymentHeld,
			})
		if res.Error != nil {
			return fmt.Errorf("%w: %v", ErrStore, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: only pending sessions can be confirmed", ErrInvalidState)
		}

		adminFee, tutorAmount := FeeSplit(session.Price, feeRate)
		txn = models.Transaction{
			SessionID:   session.ID,
			StudentID:   session.StudentID,
			TutorID:     session.TutorID,
			Amount:      session.Price,
			AdminFee:    adminFee,
			TutorAmount: tutorAmount,
			Status:      models.TransactionHeld,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrStore, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// RejectSession lets the owning tutor cancel a pending or confirmed
// session. A held transaction, if any, stays held until an admin
// refunds it.
func RejectSession(db *gorm.DB, sessionID, tutorUserID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		session, err := sessionOwnedByTutor(tx, sessionID, tutorUserID)
		if err != nil {
			return err
		}

		res := tx.Model(&models.Session{}).
			Where("id = ? AND status IN ?", session.ID, []string{models.SessionPending, models.SessionConfirmed}).
			Update("status", models.SessionCancelled)
		if res.Error != nil {
			return fmt.Errorf("%w: %v", ErrStore, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: only pending or confirmed sessions can be rejected", ErrInvalidState)
		}
		return nil
	})
}

// CompleteSession moves a confirmed session to completed and bumps the
// tutor's completed-session counter by exactly one. Counter and status
// succeed or fail together.
func CompleteSession(db *gorm.DB, sessionID, tutorUserID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		session, err := sessionOwnedByTutor(tx, sessionID, tutorUserID)
		if err != nil {
			return err
		}

		res := tx.Model(&models.Session{}).
			Where("id = ? AND status = ?", session.ID, models.SessionConfirmed).
			Update("status", models.SessionCompleted)
		if res.Error != nil {
			return fmt.Errorf("%w: %v", ErrStore, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: only confirmed sessions can be completed", ErrInvalidState)
		}

		if err := tx.Model(&models.TutorProfile{}).
			Where("id = ?", session.TutorID).
			Update("sessions_completed", gorm.Expr("sessions_completed + ?", 1)).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrStore, err)
		}
		return nil
	})
}

// CancelSession lets the owning student cancel any non-terminal
// session.
func CancelSession(db *gorm.DB, sessionID, studentID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var session models.Session
		if err := tx.First(&session, "id = ?", sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: session not found", ErrNotFound)
			}
			return fmt.Errorf("%w: %v", ErrStore, err)
		}
		if session.StudentID != studentID {
			return fmt.Errorf("%w: this is not your session", ErrForbidden)
		}

		res := tx.Model(&models.Session{}).
			Where("id = ? AND status IN ?", session.ID, []string{models.SessionPending, models.SessionConfirmed}).
			Update("status", models.SessionCancelled)
		if res.Error != nil {
			return fmt.Errorf("%w: %v", ErrStore, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: session is already finished", ErrInvalidState)
		}
		return nil
	})
}

// sessionOwnedByTutor resolves sessionID and checks it belongs to the
// tutor profile of tutorUserID.
func sessionOwnedByTutor(tx *gorm.DB, sessionID, tutorUserID uuid.UUID) (*models.Session, error) {
	var session models.Session
	if err := tx.First(&session, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: session not found", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	var profile models.TutorProfile
	if err := tx.First(&profile, "id = ?", session.TutorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: tutor profile not found", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if profile.UserID != tutorUserID {
		return nil, fmt.Errorf("%w: this is not your session", ErrForbidden)
	}

	return &session, nil
}
