package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TransactionHeld     = "held"
	TransactionReleased = "released"
	TransactionRefunded = "refunded"
)

// Transaction is the escrow ledger row for a session. Created exactly
// once when the session is confirmed; the fee split is computed then
// and never changes. amount = admin_fee + tutor_amount at all times.
type Transaction struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;unique" json:"session_id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null" json:"student_id"`
	TutorID   uuid.UUID `gorm:"type:uuid;not null" json:"tutor_id"`

	Amount      int64 `gorm:"not null" json:"amount"`
	AdminFee    int64 `gorm:"not null" json:"admin_fee"`
	TutorAmount int64 `gorm:"not null" json:"tutor_amount"`

	Status string `gorm:"size:20;not null;default:'held'" json:"status"`
	Notes  string `gorm:"type:text" json:"notes"`

	EscrowReleasedAt *time.Time `json:"escrow_released_at"`

	Session Session      `gorm:"foreignKey:SessionID" json:"session"`
	Student User         `gorm:"foreignKey:StudentID" json:"student"`
	Tutor   TutorProfile `gorm:"foreignKey:TutorID" json:"tutor"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
