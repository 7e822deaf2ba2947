package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	WithdrawalPending   = "pending"
	WithdrawalCompleted = "completed"
	WithdrawalRejected  = "rejected"
)

type Withdrawal struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TutorID uuid.UUID `gorm:"type:uuid;not null" json:"tutor_id"`

	Amount        int64  `gorm:"not null" json:"amount"`
	BankName      string `gorm:"size:100;not null" json:"bank_name"`
	AccountNumber string `gorm:"size:50;not null" json:"account_number"`
	AccountName   string `gorm:"size:255;not null" json:"account_name"`

	Status          string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	RejectionReason string     `gorm:"type:text" json:"rejection_reason"`
	ProcessedBy     *uuid.UUID `gorm:"type:uuid" json:"processed_by"`
	ProcessedAt     *time.Time `json:"processed_at"`

	Tutor TutorProfile `gorm:"foreignKey:TutorID" json:"tutor"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (w *Withdrawal) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
