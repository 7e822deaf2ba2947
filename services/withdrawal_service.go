package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kartyax/tutorhub/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WithdrawalParams struct {
	Amount        int64
	BankName      string
	AccountNumber string
	AccountName   string
}

// AvailableBalance is what the tutor can still withdraw: the sum of
// payouts from released escrow minus everything already requested or
// paid out.
func AvailableBalance(db *gorm.DB, tutorID uuid.UUID) (int64, error) {
	var released int64
	err := db.Model(&models.Transaction{}).
		Where("tutor_id = ? AND status = ?", tutorID, models.TransactionReleased).
		Select("COALESCE(SUM(tutor_amount), 0)").
		Scan(&released).Error
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStore, err)
	}

	var withdrawn int64
	err = db.Model(&models.Withdrawal{}).
		Where("tutor_id = ? AND status IN ?", tutorID, []string{models.WithdrawalPending, models.WithdrawalCompleted}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&withdrawn).Error
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStore, err)
	}

	return released - withdrawn, nil
}

// RequestWithdrawal queues a payout request for the tutor profile
// behind tutorUserID, capped at the tutor's available balance.
func RequestWithdrawal(db *gorm.DB, tutorUserID uuid.UUID, p WithdrawalParams) (*models.Withdrawal, error) {
	if p.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if p.BankName == "" || p.AccountNumber == "" || p.AccountName == "" {
		return nil, fmt.Errorf("%w: bank details are required", ErrValidation)
	}

	var withdrawal models.Withdrawal
	err := db.Transaction(func(tx *gorm.DB) error {
		// The row lock serializes concurrent requests for the same
		// tutor so both cannot pass the balance cap below.
		var profile models.TutorProfile
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&profile, "user_id = ?", tutorUserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: tutor profile not found", ErrNotFound)
			}
			return fmt.Errorf("%w: %v", ErrStore, err)
		}

		balance, err := AvailableBalance(tx, profile.ID)
		if err != nil {
			return err
		}
		if p.Amount > balance {
			return fmt.Errorf("%w: insufficient balance for this withdrawal", ErrValidation)
		}

		withdrawal = models.Withdrawal{
			TutorID:       profile.ID,
			Amount:        p.Amount,
			BankName:      p.BankName,
			AccountNumber: p.AccountNumber,
			AccountName:   p.AccountName,
			Status:        models.WithdrawalPending,
		}
		if err := tx.Create(&withdrawal).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrStore, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &withdrawal, nil
}

// ProcessWithdrawal marks a pending withdrawal completed, recording the
// admin and timestamp. The caller is trusted to have made the bank
// transfer off-band.
func ProcessWithdrawal(db *gorm.DB, withdrawalID, adminID uuid.UUID) error {
	return completeOrReject(db, withdrawalID, adminID, models.WithdrawalCompleted, "")
}

// RejectWithdrawal marks a pending withdrawal rejected with the reason,
// returning the amount to the tutor's available balance by virtue of
// the status change.
func RejectWithdrawal(db *gorm.DB, withdrawalID, adminID uuid.UUID, reason string) error {
	return completeOrReject(db, withdrawalID, adminID, models.WithdrawalRejected, reason)
}

func completeOrReject(db *gorm.DB, withdrawalID, adminID uuid.UUID, status, reason string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var withdrawal models.Withdrawal
		if err := tx.First(&withdrawal, "id = ?", withdrawalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: withdrawal not found", ErrNotFound)
			}
			return fmt.Errorf("%w: %v", ErrStore, err)
		}

		now := time.Now()
		res := tx.Model(&models.Withdrawal{}).
			Where("id = ? AND status = ?", withdrawal.ID, models.WithdrawalPending).
			Updates(map[string]interface{}{
				"status":           status,
				"rejection_reason": reason,
				"processed_by":     &adminID,
				"processed_at":     &now,
			})
		if res.Error != nil {
			return fmt.Errorf("%w: %v", ErrStore, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: withdrawal has already been processed", ErrInvalidState)
		}
		return nil
	})
}
