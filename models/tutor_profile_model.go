package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TutorProfile is the public listing record behind the catalog. One per
// user registered with the tutor role, created with placeholder values
// the tutor fills in later.
type TutorProfile struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;unique" json:"user_id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	University string    `gorm:"size:255" json:"university"`
	Subject    string    `gorm:"size:255" json:"subject"`
	Lecturer   string    `gorm:"size:255" json:"lecturer"`

	Rating            float32 `gorm:"default:0" json:"rating"`
	Reviews           int     `gorm:"default:0" json:"reviews"`
	SessionsCompleted int     `gorm:"default:0" json:"sessions_completed"`

	// Hourly rate in integer rupiah.
	Price int64 `gorm:"not null" json:"price"`

	Verified bool   `gorm:"default:false" json:"verified"`
	Avatar   string `gorm:"size:255" json:"avatar"`
	Bio      string `gorm:"type:text" json:"bio"`

	User User `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TutorProfile) TableName() string { return "tutors" }

func (t *TutorProfile) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
