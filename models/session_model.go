package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SessionPending   = "pending"
	SessionConfirmed = "confirmed"
	SessionCompleted = "completed"
	SessionCancelled = "cancelled"
	SessionRefunded  = "refunded"
)

const (
	PaymentPending  = "pending"
	PaymentHeld     = "held"
	PaymentReleased = "released"
	PaymentRefunded = "refunded"
)

type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null" json:"student_id"`
	TutorID   uuid.UUID `gorm:"type:uuid;not null" json:"tutor_id"`

	Date     time.Time `gorm:"not null" json:"date"`
	Duration int       `gorm:"not null;default:1" json:"duration"`
	Method   string    `gorm:"size:20;not null;default:'online'" json:"method"`
	Status   string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	Notes    string    `gorm:"type:text" json:"notes"`

	// Total price in integer rupiah: tutor hourly rate x duration,
	// fixed at creation.
	Price         int64  `gorm:"not null" json:"price"`
	PaymentMethod string `gorm:"size:50" json:"payment_method"`
	PaymentStatus string `gorm:"size:20;not null;default:'pending'" json:"payment_status"`

	Student User         `gorm:"foreignKey:StudentID" json:"student"`
	Tutor   TutorProfile `gorm:"foreignKey:TutorID" json:"tutor"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
