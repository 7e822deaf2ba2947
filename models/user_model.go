package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleStudent = "student"
	RoleTutor   = "tutor"
	RoleAdmin   = "admin"
)

const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	NIM      string    `gorm:"column:nim;size:20" json:"nim"`

	University string `gorm:"size:255" json:"university"`
	Role       string `gorm:"size:20;not null;default:'student'" json:"role"`

	// Verification applies to tutors only; students are approved at creation.
	VerificationStatus string `gorm:"size:20;not null;default:'pending'" json:"verification_status"`
	Verified           bool   `gorm:"default:false" json:"verified"`

	Avatar   string `gorm:"size:255" json:"avatar"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
