package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/kartyax/tutorhub/models"
	"gorm.io/gorm"
)

// FeeSplit divides an escrow amount into the platform fee and the
// tutor payout. The remainder goes to the tutor, so the two parts
// always sum back to amount.
func FeeSplit(amount int64, feeRate float64) (adminFee, tutorAmount int64) {
	adminFee = int64(math.Round(float64(amount) * feeRate))
	if adminFee < 0 {
		adminFee = 0
	}
	if adminFee > amount {
		adminFee = amount
	}
	return adminFee, amount - adminFee
}

// ReleaseEscrow pays a held transaction out to the tutor: transaction
// held -> released and the linked session's payment_status -> released,
// atomically. A second release loses the status guard and reports
// ErrInvalidState.
func ReleaseEscrow(db *gorm.DB, transactionID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		txn, err := transactionByID(tx, transactionID)
		if err != nil {
			return err
		}

		now := time.Now()
		res := tx.Model(&models.Transaction{}).
			Where("id = ? AND status = ?", txn.ID, models.TransactionHeld).
			Updates(map[string]interface{}{
				"status":             models.TransactionReleased,
				"escrow_released_at": &now,
			})
		if res.Error != nil {
			return fmt.Errorf("%w: %v", ErrStore, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: transaction is not held in escrow", ErrInvalidState)
		}

		res = tx.Model(&models.Session{}).
			Where("id = ?", txn.SessionID).
			Update("payment_status", models.PaymentReleased)
		if res.Error != nil {
			return fmt.Errorf("%w: %v", ErrStore, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: session %s missing for transaction", ErrStore, txn.SessionID)
		}
		return nil
	})
}

// RefundTransaction returns a held transaction to the student:
// transaction held -> refunded with the reason recorded, and the
// linked session's status and payment_status -> refunded, atomically.
func RefundTransaction(db *gorm.DB, transactionID uuid.UUID, reason string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		txn, err := transactionByID(tx, transactionID)
		if err != nil {
			return err
		}

		res := tx.Model(&models.Transaction{}).
			Where("id = ? AND status = ?", txn.ID, models.TransactionHeld).
			Updates(map[string]interface{}{
				"status": models.TransactionRefunded,
				"notes":  reason,
			})
		if res.Error != nil {
			return fmt.Errorf("%w: %v", ErrStore, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: transaction is not held in escrow", ErrInvalidState)
		}

		res = tx.Model(&models.Session{}).
			Where("id = ?", txn.SessionID).
			Updates(map[string]interface{}{
				"status":         models.SessionRefunded,
				"payment_status": models.PaymentRefunded,
			})
		if res.Error != nil {
			return fmt.Errorf("%w: %v", ErrStore, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: session %s missing for transaction", ErrStore, txn.SessionID)
		}
		return nil
	})
}

func transactionByID(tx *gorm.DB, id uuid.UUID) (*models.Transaction, error) {
	var txn models.Transaction
	if err := tx.First(&txn, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: transaction not found", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return &txn, nil
}
